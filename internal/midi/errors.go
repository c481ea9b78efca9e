package midi

import "fmt"

// ConnectionError is returned when the device cannot be found, opened or written to
type ConnectionError struct {
	Op   string // "find", "open", "listen" or "send"
	Port string
	Err  error
}

func (e *ConnectionError) Error() string {
	if e.Port == "" {
		return fmt.Sprintf("midi %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("midi %s %q: %v", e.Op, e.Port, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// UnknownButtonError is returned when a button name is not in the vocabulary
type UnknownButtonError struct {
	Name string
}

func (e *UnknownButtonError) Error() string {
	return fmt.Sprintf("unknown button %q", e.Name)
}

// ProtocolError is the panic value for input the device should never send
type ProtocolError struct {
	Status, Data1, Data2 uint8
	Reason               string
}

func (e *ProtocolError) Error() string {
	if e.Status == 0 {
		return "midi protocol violation: " + e.Reason
	}
	return fmt.Sprintf("midi protocol violation: %s (%02X %02X %02X)", e.Reason, e.Status, e.Data1, e.Data2)
}
