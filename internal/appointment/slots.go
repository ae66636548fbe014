package appointment

// timeSlots is the fixed reference table of bookable times: every half
// hour from 09:00 through 18:00 inclusive, 19 slots. It is a table rather
// than a per-call computation so fixtures and validation always agree.
var timeSlots = []string{
	"09:00", "09:30",
	"10:00", "10:30",
	"11:00", "11:30",
	"12:00", "12:30",
	"13:00", "13:30",
	"14:00", "14:30",
	"15:00", "15:30",
	"16:00", "16:30",
	"17:00", "17:30",
	"18:00",
}

var slotSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(timeSlots))
	for _, s := range timeSlots {
		set[s] = struct{}{}
	}
	return set
}()

// TimeSlots returns a copy of the bookable time table.
func TimeSlots() []string {
	slots := make([]string, len(timeSlots))
	copy(slots, timeSlots)
	return slots
}

// ValidSlot reports whether t is one of the bookable times.
func ValidSlot(t string) bool {
	_, ok := slotSet[t]
	return ok
}
