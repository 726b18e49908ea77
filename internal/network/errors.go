// internal/network/errors.go
package network

import "fmt"

// Kind classifies a connectivity failure.
type Kind uint8

const (
	KindDNS Kind = iota
	KindTimeout
	KindHandshake
	KindRefused
	KindConfig
	KindUnreachable
	KindCanceled
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindDNS:
		return "dns"
	case KindTimeout:
		return "timeout"
	case KindHandshake:
		return "handshake"
	case KindRefused:
		return "refused"
	case KindConfig:
		return "config"
	case KindUnreachable:
		return "unreachable"
	case KindCanceled:
		return "canceled"
	case KindOther:
		return "other"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ConnectivityError is returned by Connector.Connect.
type ConnectivityError struct {
	Kind     Kind
	Endpoint string
	Err      error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("network: connect %s: %s: %v", e.Endpoint, e.Kind, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// Code is the status-block error code (10..17).
func (e *ConnectivityError) Code() uint16 { return 10 + uint16(e.Kind) }
