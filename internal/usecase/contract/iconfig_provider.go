package contract

import "time"

type IConfigProvider interface {
	GetAppBaseURL() string
	GetSendActivationEmail() bool
	GetEmailVerificationTokenExpiry() time.Duration
	GetSessionTokenExpiry() time.Duration
	GetImagesDir() string
	GetMaxUploadBytes() int64
}
