package alignment

// Mode selects the boundary conditions of the alignment DP.
type Mode int

const (
	// Local is Smith-Waterman: free start and end, scores floored at zero.
	Local Mode = iota
	// Global is Needleman-Wunsch: both sequences aligned end to end.
	Global
	// SemiGlobal leaves leading and trailing gaps unpenalized.
	SemiGlobal
)

var modeNames = []string{"local", "global", "semiglobal"}

func (m Mode) String() string {
	if m < Local || m > SemiGlobal {
		return "unknown"
	}
	return modeNames[m]
}

// Valid reports whether m is one of the three defined modes.
func (m Mode) Valid() bool {
	return m >= Local && m <= SemiGlobal
}

// ParseMode maps exactly "local", "global" or "semiglobal" to a Mode.
// Matching is case-sensitive.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if s == name {
			return Mode(i), nil
		}
	}
	return Local, &ConfigError{Field: "mode", Value: s, Reason: "unknown alignment mode", Valid: ModeNames()}
}

// ModeNames lists the accepted mode strings.
func ModeNames() []string {
	return append([]string(nil), modeNames...)
}

func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, &ConfigError{Field: "mode", Value: m.String(), Valid: ModeNames()}
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
