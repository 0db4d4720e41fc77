package application

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDialAddress(t *testing.T) {
	testCases := []struct {
		rawURL string
		want   string
	}{
		{rawURL: "https://api.katanamrp.com/v1", want: "api.katanamrp.com:443"},
		{rawURL: "https://acme.pipedrive.com/api/v1", want: "acme.pipedrive.com:443"},
		{rawURL: "http://127.0.0.1:8089/v1", want: "127.0.0.1:8089"},
		{rawURL: "http://katana.local", want: "katana.local:80"},
	}

	for _, tc := range testCases {
		t.Run(tc.rawURL, func(t *testing.T) {
			require.New(t).Equal(tc.want, dialAddress(tc.rawURL))
		})
	}
}
