package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type providersResp struct {
	Region    string         `json:"region"`
	Providers []providerView `json:"providers"`
}

func getProviders(h *Providers, target string) providersResp {
	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var resp providersResp
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		panic(err)
	}
	return resp
}

func TestProviders_List(t *testing.T) {
	var tests = []struct {
		name     string
		target   string
		region   string
		contains []string
		excludes []string
	}{
		{
			name:     "africa by region",
			target:   "/providers?region=africa",
			region:   "africa",
			contains: []string{"mpesa", "airtel", "flutterwave", "paystack", "stripe", "paypal"},
			excludes: []string{"mollie", "klarna", "plaid", "interac", "bpay", "poli"},
		},
		{
			name:     "europe by continent code",
			target:   "/providers?continent=EU",
			region:   "europe",
			contains: []string{"mollie", "klarna", "stripe", "paypal"},
			excludes: []string{"mpesa", "plaid", "bpay"},
		},
		{
			name:     "south america maps to america",
			target:   "/providers?continent=SA",
			region:   "america",
			contains: []string{"plaid", "interac", "stripe", "paypal"},
			excludes: []string{"mpesa", "mollie", "bpay"},
		},
		{
			name:     "unknown widens to global",
			target:   "/providers?region=mars",
			region:   "global",
			contains: []string{"stripe", "paypal"},
			excludes: []string{"mpesa", "mollie", "plaid", "bpay"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			registryMock := new(RegistryMock)
			registryMock.On("IsProviderConfigured", "stripe").Return(true)
			registryMock.On("IsProviderConfigured", mock.Anything).Return(false).Maybe()

			resp := getProviders(NewProviders(registryMock), tt.target)
			require.Equal(t, tt.region, resp.Region)

			ids := make(map[string]providerView, len(resp.Providers))
			for _, v := range resp.Providers {
				ids[v.ID] = v
			}
			for _, id := range tt.contains {
				require.Contains(t, ids, id)
			}
			for _, id := range tt.excludes {
				require.NotContains(t, ids, id)
			}
			require.True(t, ids["stripe"].Configured)
			require.False(t, ids["paypal"].Configured)
		})
	}
}

func TestProviders_List_RegionalBeforeGlobal(t *testing.T) {
	t.Parallel()

	registryMock := new(RegistryMock)
	registryMock.On("IsProviderConfigured", mock.Anything).Return(false)

	resp := getProviders(NewProviders(registryMock), "/providers?region=africa")

	seenGlobal := false
	for _, v := range resp.Providers {
		if v.Region == "global" {
			seenGlobal = true
			continue
		}
		require.False(t, seenGlobal, "regional processor %s listed after a global one", v.ID)
	}
}
