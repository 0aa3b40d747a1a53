package sensor

import (
	"fmt"

	"periph.io/x/conn/v3"
)

// MCP3008 is an 8-channel 10-bit SPI ADC read in single-ended mode.
type MCP3008 struct {
	conn    conn.Conn
	channel int
}

// NewMCP3008 reads channel through c, usually a spi.Conn in mode 0.
func NewMCP3008(c conn.Conn, channel int) (*MCP3008, error) {
	if channel < 0 || channel > 7 {
		return nil, fmt.Errorf("mcp3008: channel %d out of range", channel)
	}
	return &MCP3008{conn: c, channel: channel}, nil
}

// Read performs one conversion.
func (m *MCP3008) Read() (uint16, error) {
	w := []byte{0x01, 0x80 | byte(m.channel)<<4, 0x00}
	r := make([]byte, len(w))
	if err := m.conn.Tx(w, r); err != nil {
		return 0, fmt.Errorf("mcp3008 channel %d: %w", m.channel, err)
	}
	return uint16(r[1]&0x03)<<8 | uint16(r[2]), nil
}

func (m *MCP3008) String() string {
	return fmt.Sprintf("MCP3008{%s, ch%d}", m.conn, m.channel)
}
