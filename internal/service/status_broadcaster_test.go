// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/logger"
	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

func TestStatusBroadcaster_StartsIdle(t *testing.T) {
	b := NewStatusBroadcaster(logger.Nop())
	assert.Equal(t, models.StatusIdle, b.Current().Status)
}

func TestStatusBroadcaster_DeliversInSubscriptionOrder(t *testing.T) {
	b := NewStatusBroadcaster(logger.Nop())

	var calls []string
	b.Subscribe(func(e models.StatusEvent) { calls = append(calls, "first:"+string(e.Status)) })
	b.Subscribe(func(e models.StatusEvent) { calls = append(calls, "second:"+string(e.Status)) })

	cause := errors.New("boom")
	b.set(models.StatusSyncing, "", nil)
	b.set(models.StatusError, "Download: failed", cause)

	assert.Equal(t, []string{
		"first:SYNCING", "second:SYNCING",
		"first:ERROR", "second:ERROR",
	}, calls)

	current := b.Current()
	assert.Equal(t, models.StatusError, current.Status)
	assert.Equal(t, "Download: failed", current.Detail)
	assert.Equal(t, cause, current.Cause)
}

func TestStatusBroadcaster_Unsubscribe(t *testing.T) {
	b := NewStatusBroadcaster(logger.Nop())

	var n int
	unsubscribe := b.Subscribe(func(models.StatusEvent) { n++ })

	b.set(models.StatusSyncing, "", nil)
	unsubscribe()
	unsubscribe()
	b.set(models.StatusSynced, "", nil)

	assert.Equal(t, 1, n)
}

func TestStatusBroadcaster_SubscriberPanicIsContained(t *testing.T) {
	b := NewStatusBroadcaster(logger.Nop())

	var got models.SyncStatus
	b.Subscribe(func(models.StatusEvent) { panic("broken view") })
	b.Subscribe(func(e models.StatusEvent) { got = e.Status })

	assert.NotPanics(t, func() { b.set(models.StatusOffline, "Server unreachable", nil) })
	assert.Equal(t, models.StatusOffline, got)
}
