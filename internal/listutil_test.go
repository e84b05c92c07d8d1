package internal

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseResaleParams(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		wantPage    int
		wantName    string
		wantClasses []string
	}{
		{name: "defaults", target: "/resale/items", wantPage: 1},
		{name: "page", target: "/resale/items?page=3", wantPage: 3},
		{name: "page zero falls back", target: "/resale/items?page=0", wantPage: 1},
		{name: "page negative falls back", target: "/resale/items?page=-2", wantPage: 1},
		{name: "page garbage falls back", target: "/resale/items?page=abc", wantPage: 1},
		{name: "common name trimmed", target: "/resale/items?common_name=%20popcorn%20", wantPage: 1, wantName: "popcorn"},
		{
			name:        "class list",
			target:      "/resale/items?rental_class_num=61000,%2061001,,",
			wantPage:    1,
			wantClasses: []string{"61000", "61001"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			filters, page := parseResaleParams(httptest.NewRequest("GET", tc.target, nil))
			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantName, filters.CommonName)
			assert.Equal(t, tc.wantClasses, filters.RentalClasses)
		})
	}
}
