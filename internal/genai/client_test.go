package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lankacraft/marketapi/internal/config"
)

const testAPIKey = "AIzaTestKeyTestKeyTestKeyTestKeyTest"

func testClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	c := NewClient(config.GeminiConfig{
		APIKey:          testAPIKey,
		Model:           "gemini-1.5-flash",
		Timeout:         2 * time.Second,
		Temperature:     0.7,
		MaxOutputTokens: 500,
	}, zap.NewNop())
	c.baseURL = serverURL
	return c
}

func modelResponse(text string) string {
	resp := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]string{{"text": text}},
				},
			},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestValidateAPIKey(t *testing.T) {
	cases := []struct {
		name   string
		apiKey string
		valid  bool
	}{
		{"valid", testAPIKey, true},
		{"empty", "", false},
		{"placeholder", "YOUR_ACTUAL_API_KEY_HERE", false},
		{"wrong prefix", "sk-0123456789012345678901234567890123456789", false},
		{"too short", "AIzaShort", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewClient(config.GeminiConfig{APIKey: tc.apiKey}, zap.NewNop())
			err := c.ValidateAPIKey()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrConfig)
			}
		})
	}
}

func TestGenerateShopProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "gemini-1.5-flash:generateContent")
		assert.Equal(t, testAPIKey, r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Contains(t, req.Contents[0].Parts[0].Text, "carved wooden masks")
		assert.Equal(t, 0.7, req.GenerationConfig.Temperature)
		assert.Equal(t, 500, req.GenerationConfig.MaxOutputTokens)

		fmt.Fprint(w, modelResponse(`{"shopName":"Lanka Masks","description":"Handmade masks.","specialties":"Kolam masks","businessHours":"Mon-Sat: 9-5"}`))
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	profile, err := c.GenerateShopProfile(context.Background(), "carved wooden masks")
	require.NoError(t, err)

	assert.Equal(t, "Lanka Masks", profile.ShopName)
	assert.Equal(t, "Handmade masks.", profile.Description)
	assert.Equal(t, "Kolam masks", profile.Specialties)
	assert.Equal(t, "Mon-Sat: 9-5", profile.BusinessHours)
}

func TestGenerateShopProfileStripsFencesAndProse(t *testing.T) {
	text := "Here is your shop profile:\n```json\n{\"shopName\":\"Lanka Masks\",\"description\":\"d\",\"specialties\":\"s\",\"businessHours\":\"h\"}\n```\nEnjoy!"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, modelResponse(text))
	}))
	defer server.Close()

	profile, err := testClient(t, server.URL).GenerateShopProfile(context.Background(), "masks")
	require.NoError(t, err)
	assert.Equal(t, "Lanka Masks", profile.ShopName)
}

func TestGenerateShopProfileMissingFieldIsParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, modelResponse(`{"shopName":"Lanka Masks","description":"d"}`))
	}))
	defer server.Close()

	_, err := testClient(t, server.URL).GenerateShopProfile(context.Background(), "masks")
	assert.ErrorIs(t, err, ErrParse)
}

func TestGenerateShopProfileNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[]}`)
	}))
	defer server.Close()

	_, err := testClient(t, server.URL).GenerateShopProfile(context.Background(), "masks")
	assert.ErrorIs(t, err, ErrParse)
}

func TestGenerateShopProfileStatusClassification(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrConfig},
		{http.StatusForbidden, ErrConfig},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusNotFound, ErrUnavailable},
		{http.StatusInternalServerError, ErrUnavailable},
		{http.StatusServiceUnavailable, ErrUnavailable},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("status %d", tc.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer server.Close()

			_, err := testClient(t, server.URL).GenerateShopProfile(context.Background(), "masks")
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestGenerateShopProfileTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, modelResponse("{}"))
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	c.timeout = 20 * time.Millisecond
	c.httpClient.Timeout = 20 * time.Millisecond

	_, err := c.GenerateShopProfile(context.Background(), "masks")
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestGenerateShopProfileInvalidKeyFailsBeforeCall(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	c.apiKey = ""

	_, err := c.GenerateShopProfile(context.Background(), "masks")
	assert.ErrorIs(t, err, ErrConfig)
	assert.False(t, called, "invalid key must fail fast without a request")
}

func TestFirstJSONObject(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, true},
		{"surrounded by prose", `sure: {"a":{"b":2}} done`, `{"a":{"b":2}}`, true},
		{"brace inside string", `{"a":"}"}`, `{"a":"}"}`, true},
		{"no object", "nothing here", "", false},
		{"unbalanced", `{"a":1`, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := firstJSONObject(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
