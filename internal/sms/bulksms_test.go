package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevModeWithoutCredentials(t *testing.T) {
	c := NewClient("", "", "TestSender")
	assert.True(t, c.DevMode())

	// Development mode never touches the network and never fails.
	require.NoError(t, c.Send(context.Background(), "0821234567", "hello"))
}

func TestSendPostsToGateway(t *testing.T) {
	var got map[string]string
	var user, pass string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, _ = r.BasicAuth()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient("tok", "secret", "HireMeFor")
	c.BaseURL = srv.URL

	require.NoError(t, c.SendOTP(context.Background(), "0821234567", "654321", "registration"))

	assert.Equal(t, "tok", user)
	assert.Equal(t, "secret", pass)
	assert.Equal(t, "27821234567", got["to"])
	assert.Equal(t, "HireMeFor", got["from"])
	assert.Equal(t, "Your Hire Me For registration code is: 654321. Valid for 60 minutes.", got["body"])
}

func TestSendGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient("tok", "bad", "HireMeFor")
	c.BaseURL = srv.URL

	assert.Error(t, c.Send(context.Background(), "0821234567", "hello"))
}
