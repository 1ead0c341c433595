package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestBaseModelBeforeCreateAssignsUUID(t *testing.T) {
	var m BaseModel
	require.NoError(t, m.BeforeCreate(nil))
	_, err := uuid.Parse(m.ID)
	require.NoError(t, err)
}

func TestBaseModelBeforeCreateKeepsExplicitID(t *testing.T) {
	m := BaseModel{ID: "fixed-id"}
	require.NoError(t, m.BeforeCreate(nil))
	require.Equal(t, "fixed-id", m.ID)
}
