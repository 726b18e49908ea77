// internal/writer/modbus/client_test.go
package modbus

import (
	"reflect"
	"testing"
)

func TestPackRegisters_BigEndian(t *testing.T) {
	got := packRegisters([]uint16{0x1234, 0x00FF})
	if want := []byte{0x12, 0x34, 0x00, 0xFF}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected % x, got % x", want, got)
	}
}

func TestPackBits_LSBFirst(t *testing.T) {
	got := packBits([]bool{true, false, true, false, false, false, false, false, true})
	if want := []byte{0x05, 0x01}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected % x, got % x", want, got)
	}
	if n := len(packBits(nil)); n != 0 {
		t.Fatalf("expected empty payload, got %d bytes", n)
	}
}

func TestWrite_RejectsReadOnlyAreas(t *testing.T) {
	c := &EndpointClient{}
	if err := c.WriteBits(2, 1, 0, []bool{true}); err == nil {
		t.Fatalf("expected error writing discrete inputs")
	}
	if err := c.WriteRegisters(4, 1, 0, []uint16{1}); err == nil {
		t.Fatalf("expected error writing input registers")
	}
}

func TestNewEndpointClient_RequiresEndpoint(t *testing.T) {
	if _, err := NewEndpointClient(Config{}); err == nil {
		t.Fatalf("expected error for missing endpoint")
	}
}
