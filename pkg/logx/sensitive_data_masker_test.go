package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"auction_house/pkg/logx"
)

func TestSensitiveDataMaskerMask(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name   string
		input  []byte
		output []byte
	}{
		{
			name:   "Password",
			input:  []byte(`{"hello":"world","password":"abc123"}`),
			output: []byte(`{"hello":"world","password":"[MASKED]"}`),
		},
		{
			name:   "Password capital letter",
			input:  []byte(`{"hello":"world","Password":"abc123"}`),
			output: []byte(`{"hello":"world","Password":"[MASKED]"}`),
		},
		{
			name:   "Session token",
			input:  []byte(`{"token":"eyJhbGciOiJIUzI1NiJ9","role":"BIDDER"}`),
			output: []byte(`{"token":"[MASKED]","role":"BIDDER"}`),
		},
		{
			name:   "Bot API path",
			input:  []byte(`POST /bot123456:AAH-x_yz/sendMessage HTTP/1.1`),
			output: []byte(`POST /bot[MASKED]/sendMessage HTTP/1.1`),
		},
		{
			name:   "Connection string password",
			input:  []byte(`dsn=postgres://auction:s3cr3t@db:5432/auction`),
			output: []byte(`dsn=postgres://auction:[MASKED]@db:5432/auction`),
		},
		{
			name:   "Bid payload is left untouched",
			input:  []byte(`{"amount":250}`),
			output: []byte(`{"amount":250}`),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			output := masker.Mask(tc.input)

			rq.Equal(tc.output, output, "%s vs %s", tc.output, output)
		})
	}
}
