package models_test

import (
	"reflect"
	"testing"

	"github.com/nekidaem/microblog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinRowsCascadeFromBothSides(t *testing.T) {
	// Subscriptions and read marks must go away when either referenced
	// entity does, so both sides carry a cascading foreign key.
	tests := []struct {
		name  string
		model any
		field string
	}{
		{"subscription follows its account", models.Subscription{}, "Account"},
		{"subscription follows its blog", models.Subscription{}, "Blog"},
		{"read mark follows its account", models.ReadMark{}, "Account"},
		{"read marks follow their post", models.Post{}, "ReadMarks"},
		{"posts follow their blog", models.Blog{}, "Posts"},
		{"blog follows its account", models.Account{}, "Blog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, ok := reflect.TypeOf(tt.model).FieldByName(tt.field)
			require.True(t, ok, "missing association field %s", tt.field)
			assert.Contains(t, field.Tag.Get("gorm"), "constraint:OnDelete:CASCADE")
		})
	}
}

func TestJoinRowsAreUniquePerPair(t *testing.T) {
	for _, tt := range []struct {
		model  any
		fields [2]string
	}{
		{models.Subscription{}, [2]string{"AccountID", "BlogID"}},
		{models.ReadMark{}, [2]string{"AccountID", "PostID"}},
	} {
		typ := reflect.TypeOf(tt.model)
		for _, name := range tt.fields {
			field, ok := typ.FieldByName(name)
			require.True(t, ok)
			assert.Contains(t, field.Tag.Get("gorm"), "uniqueIndex:", "%s.%s", typ.Name(), name)
		}
	}
}
