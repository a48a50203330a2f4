package model

// SubjectCount is the number of documents for one subject.
type SubjectCount struct {
	Subject string `json:"subject"`
	Count   int    `json:"count"`
}

// StudentCount is the number of documents for one uploader.
type StudentCount struct {
	StudentID   string `json:"studentId"`
	StudentName string `json:"studentName"`
	Count       int    `json:"count"`
}

// StatusCount is the number of documents in one status.
type StatusCount struct {
	Status Status `json:"status"`
	Count  int    `json:"count"`
}

// Analytics summarizes the document store at one point in time.
type Analytics struct {
	TotalUploads  int            `json:"totalUploads"`
	SubjectWise   []SubjectCount `json:"subjectWise"`
	StudentWise   []StudentCount `json:"studentWise"`
	StatusWise    []StatusCount  `json:"statusWise"`
	RecentUploads int            `json:"recentUploads"`
}
