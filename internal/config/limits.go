package config

const (
	// MaxUsernameLength fits PostgreSQL VARCHAR(255) and keeps usernames
	// reasonable on small screens.
	MaxUsernameLength = 255

	// MaxMessageLength caps a single chat message; long pastes past this
	// point only inflate the prompt without improving answers.
	MaxMessageLength = 8000

	// MaxDiaryContentLength caps one diary note.
	MaxDiaryContentLength = 20000

	// HistoryWindow is how many prior turns feed prompt composition.
	HistoryWindow = 5

	// CSVPreviewRows is how many parsed records are sent to the provider
	// when describing an uploaded CSV.
	CSVPreviewRows = 10

	// MaxCSVUploadBytes limits the multipart upload size.
	MaxCSVUploadBytes = 10 << 20
)
