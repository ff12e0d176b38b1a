// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/adapter"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/logger"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/store"
	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

// DefaultRequestTimeout bounds every remote call made by the engine when no
// timeout is configured.
const DefaultRequestTimeout = 5 * time.Second

const kindLocal adapter.ErrorKind = "local"

var (
	errLocalStore    = errors.New("local store")
	errNoCurrentUser = errors.New("no current user")
)

// syncEngine is the implementation of [SyncEngine].
//
// At most one run (sync or retry) is in flight, tracked under flightMu.
// RequestSync calls arriving during a sync join it through flight; calls that
// cannot be served by it are rejected with [models.ReasonAlreadySyncing].
type syncEngine struct {
	remote    adapter.RemoteClient
	contracts store.LocalContractRepository
	settings  SyncSettings
	queue     *RetryQueue
	probe     ConnectivityProbe
	status    *StatusBroadcaster

	timeout time.Duration
	now     func() time.Time

	flight   singleflight.Group
	flightMu sync.Mutex
	active   *activeSync
	retrying bool
	runs     uint64

	resultMu   sync.RWMutex
	lastResult *models.SyncResult

	logger *logger.Logger
}

// NewSyncEngine wires a [SyncEngine]. A nil probe means always online; a
// non-positive timeout means [DefaultRequestTimeout]. The queue is used as
// is: call [RetryQueue.Load] beforehand to restore persisted entries.
func NewSyncEngine(
	remote adapter.RemoteClient,
	contracts store.LocalContractRepository,
	settings SyncSettings,
	queue *RetryQueue,
	probe ConnectivityProbe,
	timeout time.Duration,
	logger *logger.Logger,
) SyncEngine {
	if probe == nil {
		probe = AlwaysOnline
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	return &syncEngine{
		remote:    remote,
		contracts: contracts,
		settings:  settings,
		queue:     queue,
		probe:     probe,
		status:    NewStatusBroadcaster(logger),
		timeout:   timeout,
		now:       time.Now,
		logger:    logger,
	}
}

// RequestSync implements [SyncEngine].
//
// A call made while a sync runs receives that sync's result. A forced call
// cannot join a normal sync and no call can join a retry; both are rejected.
// The running sync is cancelled only when every caller waiting on it has
// given up; a caller that gives up earlier gets a cancelled result at once.
func (e *syncEngine) RequestSync(ctx context.Context, opts models.SyncOptions) models.SyncResult {
	if e.settings.Get().StorageMode == models.LocalOnly && !opts.Force {
		now := e.now()
		return models.SyncResult{
			Reason:     models.ReasonSyncDisabled,
			Status:     e.status.Current().Status,
			Detail:     "sync is disabled in local-only mode",
			StartedAt:  now,
			FinishedAt: now,
		}
	}

	run, ch, ok := e.joinSync(ctx, opts)
	if !ok {
		return e.rejected()
	}

	select {
	case res := <-ch:
		return res.Val.(models.SyncResult)
	case <-ctx.Done():
	}

	if run.leave() {
		// nobody waits any more: the run stops at its next checkpoint
		return (<-ch).Val.(models.SyncResult)
	}

	now := e.now()
	return models.SyncResult{
		Reason:     models.ReasonCancelled,
		Status:     e.status.Current().Status,
		Detail:     "Sync cancelled",
		StartedAt:  now,
		FinishedAt: now,
	}
}

// joinSync starts a sync or joins the one in flight. It reports false when
// the call has to be rejected.
func (e *syncEngine) joinSync(ctx context.Context, opts models.SyncOptions) (*activeSync, <-chan singleflight.Result, bool) {
	e.flightMu.Lock()
	defer e.flightMu.Unlock()

	if e.retrying {
		return nil, nil, false
	}

	if run := e.active; run != nil {
		if opts.Force && !run.force {
			return nil, nil, false
		}
		run.join(ctx)
		e.logger.Debug().Bool("force", opts.Force).Msg("sync request coalesced into the running sync")
		// run.key stays registered in flight while e.active points at run
		return run, e.flight.DoChan(run.key, func() (any, error) { return e.rejected(), nil }), true
	}

	e.runs++
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	run := &activeSync{key: fmt.Sprintf("sync-%d", e.runs), force: opts.Force, cancel: cancel}
	run.join(ctx)
	e.active = run

	ch := e.flight.DoChan(run.key, func() (any, error) {
		defer cancel()
		result := e.run(runCtx, opts, run.abandoned)

		e.flightMu.Lock()
		e.active = nil
		e.flightMu.Unlock()
		return result, nil
	})
	return run, ch, true
}

// RetryFailed implements [SyncEngine].
func (e *syncEngine) RetryFailed(ctx context.Context) (result models.SyncResult) {
	if !e.beginRetry() {
		return e.rejected()
	}
	defer e.endRetry()

	result.StartedAt = e.now()

	entries := e.queue.List()
	if len(entries) == 0 {
		result.Success = true
		result.Status = e.status.Current().Status
		result.FinishedAt = e.now()
		return result
	}

	defer e.complete(&result, "retry")

	if e.settings.Get().StorageMode == models.LocalOnly {
		result.Reason = models.ReasonSyncDisabled
		result.Status = e.status.Current().Status
		result.Detail = "sync is disabled in local-only mode"
		return result
	}

	if !e.probe.Online(ctx) {
		e.finish(&result, models.StatusOffline, models.ReasonOffline, "No network connection", nil)
		return result
	}
	if ctx.Err() != nil {
		e.cancel(&result)
		return result
	}

	e.status.set(models.StatusSyncing, "Retrying failed uploads", nil)

	records, err := e.retrySet(ctx, entries)
	if err != nil {
		ul := phaseOutcome{name: "Upload", err: err, kind: kindLocal, total: len(entries), failed: len(entries)}
		e.resolve(ctx, &result, nil, &ul)
		return result
	}
	if ctx.Err() != nil {
		e.cancel(&result)
		return result
	}

	result.Retried = len(records)
	ul := e.upload(ctx, records, &result)
	e.resolve(ctx, &result, nil, &ul)
	return result
}

// ClearRetryQueue implements [SyncEngine].
func (e *syncEngine) ClearRetryQueue(ctx context.Context) error {
	e.logger.Info().Int("entries", e.queue.Len()).Msg("retry queue cleared by user")
	return e.queue.Clear(ctx)
}

// FailedRecords implements [SyncEngine].
func (e *syncEngine) FailedRecords() []models.RetryEntry {
	return e.queue.List()
}

// Status implements [SyncEngine].
func (e *syncEngine) Status() models.StatusEvent {
	return e.status.Current()
}

// LastResult implements [SyncEngine].
func (e *syncEngine) LastResult() (models.SyncResult, bool) {
	e.resultMu.RLock()
	defer e.resultMu.RUnlock()

	if e.lastResult == nil {
		return models.SyncResult{}, false
	}
	return *e.lastResult, true
}

// Subscribe implements [SyncEngine].
func (e *syncEngine) Subscribe(fn func(models.StatusEvent)) (unsubscribe func()) {
	return e.status.Subscribe(fn)
}

// run performs one full sync: connectivity, current user, download, upload.
func (e *syncEngine) run(ctx context.Context, opts models.SyncOptions, abandoned func() bool) (result models.SyncResult) {
	result.StartedAt = e.now()
	defer e.complete(&result, "sync")

	cfg := e.settings.Get()

	if !e.probe.Online(ctx) {
		e.finish(&result, models.StatusOffline, models.ReasonOffline, "No network connection", nil)
		return result
	}
	if abandoned() {
		e.cancel(&result)
		return result
	}

	user, err := callRemote(ctx, e.timeout, "current user", e.remote.Me)
	if err != nil || user.UserID == 0 {
		if err == nil {
			err = errNoCurrentUser
		}
		switch kind := errorKind(err); kind {
		case adapter.KindTimeout, adapter.KindNetwork:
			e.finish(&result, models.StatusError, reasonFor(kind), fmt.Sprintf("Auth check: failed (%s: %s)", kind, err), err)
			return result
		}
		e.finish(&result, models.StatusError, models.ReasonNotAuthenticated, "not authenticated", err)
		return result
	}

	e.status.set(models.StatusSyncing, "", nil)

	since := cfg.LastSyncTimestamp
	if opts.Force {
		since = nil
	}

	dl, applied := e.download(ctx, since)
	result.Downloaded = dl.count

	if abandoned() {
		e.cancel(&result)
		return result
	}

	set, err := e.uploadSet(ctx, since, applied)
	if err != nil {
		ul := phaseOutcome{name: "Upload", err: err, kind: kindLocal}
		e.resolve(ctx, &result, &dl, &ul)
		return result
	}
	if abandoned() {
		e.cancel(&result)
		return result
	}

	ul := e.upload(ctx, set, &result)
	e.resolve(ctx, &result, &dl, &ul)
	return result
}

// download applies remote records newer than since (all when since is nil)
// under last-writer-wins, remote winning ties. It returns the ids written
// to the local store.
func (e *syncEngine) download(ctx context.Context, since *time.Time) (phaseOutcome, map[string]struct{}) {
	out := phaseOutcome{name: "Download"}
	applied := make(map[string]struct{})

	remote, err := callRemote(ctx, e.timeout, "list contracts", func(ctx context.Context) ([]models.Contract, error) {
		return e.remote.ListContracts(ctx, since)
	})
	if err != nil {
		out.err, out.kind = err, errorKind(err)
		e.logger.Warn().Err(err).Str("phase", "download").Msg("download failed")
		return out, applied
	}

	for _, incoming := range remote {
		local, getErr := e.contracts.Get(ctx, incoming.ID)
		switch {
		case errors.Is(getErr, store.ErrContractNotFound):
		case getErr != nil:
			out.err = fmt.Errorf("%w: read %s: %w", errLocalStore, incoming.ID, getErr)
			out.kind = kindLocal
			return out, applied
		case local.NewerThan(incoming):
			e.logger.Debug().
				Str("contract_id", incoming.ID).
				Time("local_updated_at", local.UpdatedAt).
				Time("remote_updated_at", incoming.UpdatedAt).
				Msg("local copy is newer, remote copy ignored")
			continue
		}

		if err = e.contracts.Put(ctx, incoming); err != nil {
			out.err = fmt.Errorf("%w: write %s: %w", errLocalStore, incoming.ID, err)
			out.kind = kindLocal
			return out, applied
		}
		applied[incoming.ID] = struct{}{}
		out.count++
	}

	e.logger.Debug().Int("received", len(remote)).Int("applied", out.count).Msg("download finished")
	return out, applied
}

// uploadSet returns the local records changed since the last sync plus the
// queued ones. Records just written by the download are left out unless
// they are queued.
func (e *syncEngine) uploadSet(ctx context.Context, since *time.Time, applied map[string]struct{}) ([]models.Contract, error) {
	var (
		changed []models.Contract
		err     error
	)
	if since == nil {
		changed, err = e.contracts.List(ctx)
	} else {
		changed, err = e.contracts.ListUpdatedAfter(ctx, *since)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: list changed contracts: %w", errLocalStore, err)
	}

	set := make([]models.Contract, 0, len(changed)+e.queue.Len())
	seen := make(map[string]struct{}, cap(set))

	for _, c := range changed {
		if _, ok := applied[c.ID]; ok && !e.queue.Contains(c.ID) {
			continue
		}
		set = append(set, c)
		seen[c.ID] = struct{}{}
	}

	queued, err := e.retrySet(ctx, e.queue.List())
	if err != nil {
		return nil, err
	}
	for _, c := range queued {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		set = append(set, c)
		seen[c.ID] = struct{}{}
	}

	return set, nil
}

// retrySet resolves queue entries to the current local copies. An entry
// whose record is gone from the local store is sent as queued.
func (e *syncEngine) retrySet(ctx context.Context, entries []models.RetryEntry) ([]models.Contract, error) {
	records := make([]models.Contract, 0, len(entries))
	for _, entry := range entries {
		current, err := e.contracts.Get(ctx, entry.Contract.ID)
		switch {
		case errors.Is(err, store.ErrContractNotFound):
			records = append(records, entry.Contract)
		case err != nil:
			return nil, fmt.Errorf("%w: read queued %s: %w", errLocalStore, entry.Contract.ID, err)
		default:
			records = append(records, current)
		}
	}
	return records, nil
}

// upload sends set in one bulk call. The request is detached from caller
// cancellation once issued and is bounded by the request timeout only.
func (e *syncEngine) upload(ctx context.Context, set []models.Contract, result *models.SyncResult) phaseOutcome {
	out := phaseOutcome{name: "Upload", total: len(set)}
	if len(set) == 0 {
		return out
	}

	detached := context.WithoutCancel(ctx)

	resp, err := callRemote(detached, e.timeout, "bulk upsert", func(ctx context.Context) (models.BulkUpsertResponse, error) {
		return e.remote.BulkUpsert(ctx, set)
	})
	if err != nil {
		out.err, out.kind = err, errorKind(err)
		out.failed = len(set)

		message := fmt.Sprintf("%s: %s", out.kind, err)
		for _, c := range set {
			e.enqueue(detached, c, message)
			result.Errors = append(result.Errors, models.RecordError{RecordID: c.ID, Message: message})
		}
		e.logger.Warn().Err(err).Str("phase", "upload").Int("records", len(set)).Msg("bulk upload failed")
		return out
	}

	rejected := resp.FailedIDs()
	succeeded := make([]string, 0, len(set))
	for _, c := range set {
		if message, ok := rejected[c.ID]; ok {
			e.enqueue(detached, c, message)
			result.Errors = append(result.Errors, models.RecordError{RecordID: c.ID, Message: message})
			continue
		}
		succeeded = append(succeeded, c.ID)
	}

	if err = e.queue.RemoveSucceeded(detached, succeeded...); err != nil {
		e.logger.Err(err).Str("func", "syncEngine.upload").Msg("failed to persist retry queue")
	}

	out.count = len(succeeded)
	out.failed = len(set) - len(succeeded)
	result.Uploaded = out.count
	result.Created = resp.Created
	result.Updated = resp.Updated

	e.logger.Debug().
		Int("sent", len(set)).
		Int("created", resp.Created).
		Int("updated", resp.Updated).
		Int("rejected", out.failed).
		Msg("upload finished")
	return out
}

func (e *syncEngine) enqueue(ctx context.Context, c models.Contract, message string) {
	if err := e.queue.Add(ctx, c, message); err != nil {
		e.logger.Err(err).Str("func", "syncEngine.enqueue").Str("contract_id", c.ID).Msg("failed to persist retry entry")
	}
}

// resolve turns the phase outcomes into the final status. dl is nil for a
// retry, which has no download phase.
func (e *syncEngine) resolve(ctx context.Context, result *models.SyncResult, dl, ul *phaseOutcome) {
	dlFailed := dl != nil && dl.failedPhase()
	ulFailed := ul.failedPhase()

	parts := make([]string, 0, 2)
	if dl != nil {
		parts = append(parts, dl.detail())
	}
	parts = append(parts, ul.detail())
	detail := strings.Join(parts, " | ")

	var cause error
	if dl != nil {
		cause = errors.Join(dl.err, ul.err)
	} else {
		cause = ul.err
	}

	switch {
	case !dlFailed && !ulFailed && !ul.partial():
		if dl != nil {
			if err := e.settings.SetLastSync(context.WithoutCancel(ctx), result.StartedAt); err != nil {
				e.logger.Err(err).Str("func", "syncEngine.resolve").Msg("failed to persist last sync time")
			}
		}
		result.Success = true
		e.finish(result, models.StatusSynced, models.ReasonNone, detail, nil)
	case (dl == nil || dlFailed) && ulFailed, hasTimeout(dl, ul):
		e.finish(result, models.StatusError, failureReason(dl, ul), detail, cause)
	default:
		e.finish(result, models.StatusWarning, failureReason(dl, ul), detail, cause)
	}
}

func (e *syncEngine) finish(result *models.SyncResult, status models.SyncStatus, reason models.SyncReason, detail string, cause error) {
	result.Status = status
	result.Reason = reason
	result.Detail = detail
	e.status.set(status, detail, cause)
}

func (e *syncEngine) cancel(result *models.SyncResult) {
	e.finish(result, models.StatusIdle, models.ReasonCancelled, "Sync cancelled", nil)
}

// complete stamps the result and keeps it as the last result.
func (e *syncEngine) complete(result *models.SyncResult, kind string) {
	result.FinishedAt = e.now()

	stored := *result
	e.resultMu.Lock()
	e.lastResult = &stored
	e.resultMu.Unlock()

	e.logger.Info().
		Str("run", kind).
		Bool("success", result.Success).
		Str("status", string(result.Status)).
		Str("reason", string(result.Reason)).
		Str("detail", result.Detail).
		Int("downloaded", result.Downloaded).
		Int("uploaded", result.Uploaded).
		Int("failed", len(result.Errors)).
		Dur("took", result.FinishedAt.Sub(result.StartedAt)).
		Msg("sync run finished")
}

func (e *syncEngine) rejected() models.SyncResult {
	now := e.now()
	return models.SyncResult{
		Reason:     models.ReasonAlreadySyncing,
		Status:     e.status.Current().Status,
		Detail:     "a sync is already running",
		StartedAt:  now,
		FinishedAt: now,
	}
}

func (e *syncEngine) beginRetry() bool {
	e.flightMu.Lock()
	defer e.flightMu.Unlock()

	if e.active != nil || e.retrying {
		return false
	}
	e.retrying = true
	return true
}

func (e *syncEngine) endRetry() {
	e.flightMu.Lock()
	e.retrying = false
	e.flightMu.Unlock()
}

// activeSync is the sync in flight together with the contexts of the
// callers waiting on it.
type activeSync struct {
	key    string
	force  bool
	cancel context.CancelFunc

	mu      sync.Mutex
	callers []context.Context
}

func (a *activeSync) join(ctx context.Context) {
	a.mu.Lock()
	a.callers = append(a.callers, ctx)
	a.mu.Unlock()
}

// abandoned reports whether every caller has given up.
func (a *activeSync) abandoned() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, ctx := range a.callers {
		if ctx.Err() == nil {
			return false
		}
	}
	return true
}

// leave is called by a caller whose context is done. It cancels the run and
// reports true when no caller is left.
func (a *activeSync) leave() bool {
	if !a.abandoned() {
		return false
	}
	a.cancel()
	return true
}

// phaseOutcome is the summary of one sync phase.
type phaseOutcome struct {
	name string

	err  error
	kind adapter.ErrorKind

	// count is the number of records received (download) or accepted
	// (upload).
	count int

	// total and failed describe the upload set.
	total  int
	failed int
}

// failedPhase reports a failed call or an upload where every record was
// rejected.
func (p *phaseOutcome) failedPhase() bool {
	return p.err != nil || (p.total > 0 && p.failed == p.total)
}

func (p *phaseOutcome) partial() bool {
	return p.err == nil && p.failed > 0 && p.failed < p.total
}

func (p *phaseOutcome) detail() string {
	switch {
	case p.err != nil && p.name == "Upload":
		return fmt.Sprintf("%s: failed (%s: %s), %d not sent", p.name, p.kind, p.err, p.failed)
	case p.err != nil:
		return fmt.Sprintf("%s: failed (%s: %s)", p.name, p.kind, p.err)
	case p.failed > 0:
		return fmt.Sprintf("%s: %d of %d failed", p.name, p.failed, p.total)
	case p.name == "Upload":
		return fmt.Sprintf("%s: ok (%d sent)", p.name, p.count)
	default:
		return fmt.Sprintf("%s: ok (%d received)", p.name, p.count)
	}
}

// failureReason picks the reason of a WARNING or ERROR. A timeout in any
// phase wins; otherwise the first failed phase decides.
func failureReason(dl, ul *phaseOutcome) models.SyncReason {
	if hasTimeout(dl, ul) {
		return models.ReasonTimeout
	}
	if dl != nil && dl.err != nil {
		return reasonFor(dl.kind)
	}
	if ul.err != nil {
		return reasonFor(ul.kind)
	}
	return models.ReasonPartialUploadFailure
}

// hasTimeout reports a timed out phase. A timeout fails the whole sync.
func hasTimeout(dl, ul *phaseOutcome) bool {
	return (dl != nil && dl.kind == adapter.KindTimeout) || ul.kind == adapter.KindTimeout
}

func reasonFor(kind adapter.ErrorKind) models.SyncReason {
	switch kind {
	case adapter.KindNetwork:
		return models.ReasonNetwork
	case adapter.KindTimeout:
		return models.ReasonTimeout
	case adapter.KindUnauthorized:
		return models.ReasonNotAuthenticated
	case adapter.KindValidation:
		return models.ReasonValidation
	case kindLocal:
		return models.ReasonLocalStore
	default:
		return models.ReasonServer
	}
}

// errorKind extends [adapter.KindOf] with the failures produced inside the
// engine.
func errorKind(err error) adapter.ErrorKind {
	switch {
	case err == nil:
		return adapter.KindNone
	case errors.Is(err, errLocalStore):
		return kindLocal
	case errors.Is(err, context.DeadlineExceeded):
		return adapter.KindTimeout
	case errors.Is(err, errRemotePanic):
		return adapter.KindServer
	}
	return adapter.KindOf(err)
}

// callRemote bounds fn by timeout and converts a panic into an error.
func callRemote[T any](ctx context.Context, timeout time.Duration, op string, fn func(context.Context) (T, error)) (res T, err error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			var zero T
			res, err = zero, fmt.Errorf("%w: %s: %v", errRemotePanic, op, r)
		}
	}()

	res, err = fn(callCtx)
	if err != nil && ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, adapter.ErrTimeout) {
		err = fmt.Errorf("%w: %s: %w", adapter.ErrTimeout, op, err)
	}
	return res, err
}
