package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

const (
	MimeImage = "image/"
	MimePDF   = "application/pdf"
)

// Exam defaults applied when a start request leaves them out.
const (
	DefaultTopicPracticeCount = 10
	DefaultFullSimCount       = 90 // real LGS is 90 questions
	MaxTargetCount            = 120
)
