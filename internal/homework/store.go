package homework

import "context"

// Store is the persistence boundary for homework, submissions and
// vocabulary. Implemented by SQLStore; tests use in-memory fakes.
type Store interface {
	PutHomework(ctx context.Context, hw Homework) error
	GetHomework(ctx context.Context, id string) (Homework, error)
	ListHomeworkByUser(ctx context.Context, userID string) ([]Homework, error)
	DeleteHomework(ctx context.Context, id, userID string) error

	PutSubmission(ctx context.Context, sub ExamSubmission) error
	ListSubmissionsByOwner(ctx context.Context, ownerID string) ([]ExamSubmission, error)
	ListSubmissionsByHomework(ctx context.Context, homeworkID string) ([]ExamSubmission, error)

	PutVocabularyWord(ctx context.Context, w VocabularyWord) error
	ListVocabularyByUser(ctx context.Context, userID string) ([]VocabularyWord, error)
	DeleteVocabularyWord(ctx context.Context, id, userID string) error
}
