package model

import (
	"sync"
	"testing"

	"gorm.io/gorm/schema"
)

// Every model the migrate command feeds to AutoMigrate must parse into a
// valid gorm schema with a primary key.
func TestModelSchemasParse(t *testing.T) {
	models := []interface{}{
		&User{},
		&EmailVerificationToken{},
		&PasswordResetToken{},
		&UserRefreshToken{},
		&ChatSession{},
		&ChatMessage{},
		&SubscriptionPlan{},
		&PlanCredit{},
		&UserSubscription{},
		&FeatureCredit{},
		&AddonTransaction{},
	}

	cache := &sync.Map{}
	for _, m := range models {
		s, err := schema.Parse(m, cache, schema.NamingStrategy{})
		if err != nil {
			t.Fatalf("parse %T: %v", m, err)
		}
		if s.PrioritizedPrimaryField == nil {
			t.Errorf("model %s has no primary key", s.Name)
		}
	}
}

func TestColumnsReferencedByRawQueriesExist(t *testing.T) {
	cases := []struct {
		model  interface{}
		column string
	}{
		{&ChatMessage{}, "chat_session_id"},
		{&User{}, "email_verified"},
		{&User{}, "status"},
		{&User{}, "has_seen_onboarding_prompt"},
		{&UserRefreshToken{}, "revoked"},
	}

	cache := &sync.Map{}
	for _, tc := range cases {
		s, err := schema.Parse(tc.model, cache, schema.NamingStrategy{})
		if err != nil {
			t.Fatalf("parse %T: %v", tc.model, err)
		}
		if _, ok := s.FieldsByDBName[tc.column]; !ok {
			t.Errorf("%s is missing column %s", s.Table, tc.column)
		}
	}
}
