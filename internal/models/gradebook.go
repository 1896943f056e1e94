package models

// PercentageRange maps an inclusive percentage interval to a grade.
type PercentageRange struct {
	Grade      int     `json:"grade" validate:"min=1,max=5"`
	MinPercent float64 `json:"minPercent"`
	MaxPercent float64 `json:"maxPercent"`
}

// PlusMinusPercentages is the percentage each mark type contributes.
type PlusMinusPercentages struct {
	Plus    float64 `json:"plus" validate:"gte=0,lte=100"`
	Neutral float64 `json:"neutral" validate:"gte=0,lte=100"`
	Minus   float64 `json:"minus" validate:"gte=0,lte=100"`
}

// PlusMinusMode selects how ternary marks turn into a grade.
type PlusMinusMode string

const (
	// PlusMinusModePercentage classifies the weighted mark percentage.
	PlusMinusModePercentage PlusMinusMode = "percentage"
	// PlusMinusModeStartGrade moves a start grade per mark.
	PlusMinusModeStartGrade PlusMinusMode = "startGrade"
)

// PlusMinusGradeSettings configures the start-grade conversion mode.
type PlusMinusGradeSettings struct {
	Mode       PlusMinusMode `json:"mode,omitempty" validate:"omitempty,oneof=percentage startGrade"`
	StartGrade float64       `json:"startGrade" validate:"omitempty,gte=1,lte=6"`
	PlusValue  float64       `json:"plusValue" validate:"gte=0"`
	MinusValue float64       `json:"minusValue" validate:"gte=0"`
}

// Student holds one learner and their grades.
type Student struct {
	ID      string  `json:"id" validate:"required"`
	Name    string  `json:"name"`
	ClassID string  `json:"classId"`
	Grades  []Grade `json:"grades" validate:"dive"`
}

// Class groups students.
type Class struct {
	ID       string   `json:"id" validate:"required"`
	Name     string   `json:"name"`
	Subjects []string `json:"subjects,omitempty"`
}

// Gradebook is the full document a teacher's client syncs. Revision is an opaque
// client-side version used to discard results of superseded snapshots.
type Gradebook struct {
	Revision               string                  `json:"revision,omitempty"`
	TeacherName            string                  `json:"teacherName,omitempty"`
	CurrentClassID         string                  `json:"currentClassId,omitempty"`
	Classes                []Class                 `json:"classes" validate:"dive"`
	Categories             []Category              `json:"categories" validate:"dive"`
	Students               []Student               `json:"students" validate:"dive"`
	GradePercentageRanges  []PercentageRange       `json:"gradePercentageRanges" validate:"omitempty,max=5,dive"`
	PlusMinusPercentages   *PlusMinusPercentages   `json:"plusMinusPercentages,omitempty"`
	PlusMinusGradeSettings *PlusMinusGradeSettings `json:"plusMinusGradeSettings,omitempty"`
}

// DefaultPercentageRanges returns the stock classification table.
func DefaultPercentageRanges() []PercentageRange {
	return []PercentageRange{
		{Grade: 1, MinPercent: 85, MaxPercent: 100},
		{Grade: 2, MinPercent: 70, MaxPercent: 84},
		{Grade: 3, MinPercent: 55, MaxPercent: 69},
		{Grade: 4, MinPercent: 40, MaxPercent: 54},
		{Grade: 5, MinPercent: 0, MaxPercent: 39},
	}
}

// DefaultPlusMinusPercentages returns {100, 50, 0}.
func DefaultPlusMinusPercentages() PlusMinusPercentages {
	return PlusMinusPercentages{Plus: 100, Neutral: 50, Minus: 0}
}

// DefaultPlusMinusGradeSettings returns the stock start-grade settings.
func DefaultPlusMinusGradeSettings() PlusMinusGradeSettings {
	return PlusMinusGradeSettings{Mode: PlusMinusModePercentage, StartGrade: 3, PlusValue: 0.5, MinusValue: 0.5}
}

// FindStudent returns the student with the given id.
func (g *Gradebook) FindStudent(id string) (*Student, bool) {
	for i := range g.Students {
		if g.Students[i].ID == id {
			return &g.Students[i], true
		}
	}
	return nil, false
}

// FindClass returns the class with the given id.
func (g *Gradebook) FindClass(id string) (*Class, bool) {
	for i := range g.Classes {
		if g.Classes[i].ID == id {
			return &g.Classes[i], true
		}
	}
	return nil, false
}

// StudentsInClass lists students assigned to classID in roster order.
func (g *Gradebook) StudentsInClass(classID string) []Student {
	var students []Student
	for _, s := range g.Students {
		if s.ClassID == classID {
			students = append(students, s)
		}
	}
	return students
}
