package models

// SubjectScore is one scored subject row. JSON keys keep the capitalised form
// used by the legacy result files.
type SubjectScore struct {
	Subject string  `json:"Subject"`
	CA1     float64 `json:"CA1"`
	CA2     float64 `json:"CA2"`
	Exam    float64 `json:"Exam"`
	Final   float64 `json:"Final"`
	Grade   string  `json:"Grade"`
	Remark  string  `json:"Remark"`
}

// ResultEntry is the full result set for one student, persisted in
// results.json. There is exactly one entry per student name.
type ResultEntry struct {
	StudentName string         `json:"student_name"`
	TotalScore  float64        `json:"total_score"`
	Results     []SubjectScore `json:"results"`
}

// ReportCard is the assembled view of one student's record, rendered on
// screen and as PDF. It is never persisted.
type ReportCard struct {
	Profile   Profile     `json:"profile"`
	Entry     ResultEntry `json:"entry"`
	Rank      int         `json:"rank"`
	RankLabel string      `json:"rank_label"`
	ClassSize int         `json:"class_size"`
}
