package usecase

import "time"

// SetClock overrides the view assembler's clock in tests
func (v *Views) SetClock(now func() time.Time) {
	v.now = now
}
