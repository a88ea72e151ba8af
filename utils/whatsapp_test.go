package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain digits", input: "201001234567", want: "201001234567"},
		{name: "plus prefix", input: "+20 100 123 4567", want: "201001234567"},
		{name: "double zero prefix", input: "0020-100-123-4567", want: "201001234567"},
		{name: "parentheses and dashes", input: "(20) 100-123-4567", want: "201001234567"},
		{name: "no digits", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPhone)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWhatsAppLink(t *testing.T) {
	link, err := WhatsAppLink("+20 100 123 4567", "مرحبا دكتور")
	assert.NoError(t, err)
	assert.Equal(t, "https://wa.me/201001234567?text="+
		"%D9%85%D8%B1%D8%AD%D8%A8%D8%A7+%D8%AF%D9%83%D8%AA%D9%88%D8%B1", link)
}

func TestWhatsAppLinkWithoutMessage(t *testing.T) {
	link, err := WhatsAppLink("201001234567", "")
	assert.NoError(t, err)
	assert.Equal(t, "https://wa.me/201001234567", link)
}

func TestWhatsAppLinkInvalidPhone(t *testing.T) {
	_, err := WhatsAppLink("---", "hi")
	assert.ErrorIs(t, err, ErrInvalidPhone)
}
