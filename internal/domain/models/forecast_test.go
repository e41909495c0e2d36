package models

import "testing"

func TestParseModelSlot(t *testing.T) {
	tests := []struct {
		in   string
		want ModelSlot
		ok   bool
	}{
		{"lstm", SlotLSTM, true},
		{"LSTM", SlotLSTM, true},
		{" Gru ", SlotGRU, true},
		{"rNn", SlotRNN, true},
		{"transformer", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseModelSlot(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ParseModelSlot(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
