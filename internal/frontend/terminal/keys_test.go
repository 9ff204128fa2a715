package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/templive/internal/input/key"
)

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want key.Event
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), key.NewRuneEvent('a', key.ModNone)},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), key.NewSpecialEvent(key.KeyEnter, key.ModNone)},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), key.NewSpecialEvent(key.KeyEscape, key.ModNone)},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), key.NewSpecialEvent(key.KeyTab, key.ModNone)},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModShift), key.NewSpecialEvent(key.KeyTab, key.ModShift)},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), key.NewSpecialEvent(key.KeyBackspace, key.ModNone)},
		{"delete", tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone), key.NewSpecialEvent(key.KeyDelete, key.ModNone)},
		{"shift left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift), key.NewSpecialEvent(key.KeyLeft, key.ModShift)},
		{"ctrl right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModCtrl), key.NewSpecialEvent(key.KeyRight, key.ModCtrl)},
		{"ctrl-w", tcell.NewEventKey(tcell.KeyCtrlW, 0, tcell.ModCtrl), key.NewRuneEvent('w', key.ModCtrl)},
		{"ctrl-u", tcell.NewEventKey(tcell.KeyCtrlU, 0, tcell.ModCtrl), key.NewRuneEvent('u', key.ModCtrl)},
		{"ctrl-j", tcell.NewEventKey(tcell.KeyCtrlJ, 0, tcell.ModCtrl), key.NewRuneEvent('j', key.ModCtrl)},
		{"wide rune", tcell.NewEventKey(tcell.KeyRune, '語', tcell.ModNone), key.NewRuneEvent('語', key.ModNone)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := convertKey(tt.ev)
			if !ok {
				t.Fatalf("convertKey(%v) not ok", tt.ev)
			}
			if !got.Equals(tt.want) {
				t.Errorf("convertKey = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConvertKeyFiltersUnprintable(t *testing.T) {
	if _, ok := convertKey(tcell.NewEventKey(tcell.KeyRune, 0x07, tcell.ModNone)); ok {
		t.Error("unprintable runes should be filtered")
	}
	if _, ok := convertKey(tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone)); ok {
		t.Error("function keys should be filtered")
	}
}
