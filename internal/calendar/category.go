package calendar

// Kind is the closed set of day categories.
type Kind int

const (
	KindFree Kind = iota
	KindWorkShift
	KindVacation
	KindPersonalLeave
	KindMedicalLeave
)

func (k Kind) String() string {
	switch k {
	case KindFree:
		return "free"
	case KindWorkShift:
		return "work_shift"
	case KindVacation:
		return "vacation"
	case KindPersonalLeave:
		return "personal_leave"
	case KindMedicalLeave:
		return "medical_leave"
	}
	return "unknown"
}

// ShiftCode labels a work shift.
type ShiftCode string

const (
	ShiftT1 ShiftCode = "T1"
	ShiftT2 ShiftCode = "T2"
	ShiftT3 ShiftCode = "T3"
)

// Category is the resolved meaning of a day. Shift is only set for
// KindWorkShift; use the constructors below to build one.
type Category struct {
	Kind  Kind
	Shift ShiftCode
}

func Free() Category          { return Category{Kind: KindFree} }
func Vacation() Category      { return Category{Kind: KindVacation} }
func PersonalLeave() Category { return Category{Kind: KindPersonalLeave} }
func MedicalLeave() Category  { return Category{Kind: KindMedicalLeave} }

func WorkShift(code ShiftCode) Category {
	return Category{Kind: KindWorkShift, Shift: code}
}

func (c Category) IsWorkShift() bool {
	return c.Kind == KindWorkShift
}

func (c Category) String() string {
	if c.Kind == KindWorkShift {
		return string(c.Shift)
	}
	return c.Kind.String()
}
