package service

import "errors"

// Failure taxonomy for the story write choreography. Controllers translate
// these into HTTP statuses; everything else bubbles up as a 500.
var (
	// ErrAssetUpload aborts create/update before any record is touched.
	ErrAssetUpload = errors.New("asset upload failed")

	// ErrSummaryWrite aborts the operation; the detail write is never attempted.
	ErrSummaryWrite = errors.New("story summary write failed")

	// ErrDetailWrite is reported after the summary already committed. The
	// summary is NOT rolled back; the aggregate is left degraded on purpose.
	ErrDetailWrite = errors.New("story detail write failed")

	ErrStoryNotFound = errors.New("story not found")

	ErrSlugTaken = errors.New("slug already in use")
)

// Mentor session failures.
var (
	ErrSessionNotFound = errors.New("mentor session not found")

	// ErrChatBusy rejects a question while a previous one is still in flight.
	ErrChatBusy = errors.New("a question is already awaiting a response")

	ErrEmptyChat = errors.New("question is empty")
)
