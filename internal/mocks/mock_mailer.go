package mocks

// MockMailer implements domain.Mailer for testing
type MockMailer struct {
	SendVerificationEmailFunc  func(to, token string) error
	SendPasswordResetEmailFunc func(to, token string) error

	SentVerifications  []string
	SentPasswordResets []string
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) SendVerificationEmail(to, token string) error {
	if m.SendVerificationEmailFunc != nil {
		return m.SendVerificationEmailFunc(to, token)
	}
	m.SentVerifications = append(m.SentVerifications, to)
	return nil
}

func (m *MockMailer) SendPasswordResetEmail(to, token string) error {
	if m.SendPasswordResetEmailFunc != nil {
		return m.SendPasswordResetEmailFunc(to, token)
	}
	m.SentPasswordResets = append(m.SentPasswordResets, to)
	return nil
}
