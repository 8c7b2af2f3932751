// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/devhub", "pgx5://u:p@db:5432/devhub"},
		{"postgresql://u:p@db/devhub?sslmode=disable", "pgx5://u:p@db/devhub?sslmode=disable"},
		{"pgx5://u:p@db/devhub", "pgx5://u:p@db/devhub"},
		{"host=db user=u", "host=db user=u"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, convertToPgx5DSN(tt.in))
	}
}
