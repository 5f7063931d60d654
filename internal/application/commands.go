package application

import "github.com/bnema/halo-bridge/internal/domain"

type SetTokensCommand struct {
	Tokens        domain.TokenPair
	TransactionID string
}

// AttachCommand uploads one local file and links it to the assessment's submission.
type AttachCommand struct {
	Class        domain.Class
	AssessmentID string
	FilePath     string
}

type FinalizeCommand struct {
	Class        domain.Class
	AssessmentID string
}
