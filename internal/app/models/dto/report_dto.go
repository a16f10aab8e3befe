package dto

// StudentAge identifies a student and their age in whole years
type StudentAge struct {
	ID    int64  `json:"id" example:"3"`
	Name  string `json:"name" example:"Aluno Placeholder"`
	Email string `json:"email" example:"student@jubilut.com.br"`
	Age   int    `json:"age" example:"24"`
}

// CourseIntelligence aggregates the ages of a course's students with a known birth date
type CourseIntelligence struct {
	CourseID      int64       `json:"course_id" example:"1"`
	CourseTitle   string      `json:"course_title" example:"Biologia Geral"`
	AvgAge        float64     `json:"avg_age" example:"22.5"`
	Youngest      *StudentAge `json:"youngest"`
	Oldest        *StudentAge `json:"oldest"`
	TotalStudents int         `json:"total_students" example:"2"`
}
