package trash

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/rahulvramesh/cleanmac/internal/types"
)

// TierResult splits a tier's input into what it removed and what is left
type TierResult struct {
	Resolved   []string
	Unresolved []string
	Protected  []string
	// Stop ends the sequence even if paths remain unresolved
	Stop bool
}

// Tier is one deletion strategy
type Tier interface {
	Kind() types.Tier
	Run(ctx context.Context, paths []string) (TierResult, error)
}

// Engine removes paths through an escalating sequence of tiers
type Engine struct {
	tiers  []Tier
	logger *zap.Logger
}

// NewEngine creates the standard three-tier engine
func NewEngine(mover Mover, runner ScriptRunner, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return NewEngineWithTiers(logger,
		DirectTier{Mover: mover, logger: logger},
		FinderTier{Runner: runner, logger: logger},
		AdminTier{Runner: runner, TrashDir: mover.TrashDir(), logger: logger},
	)
}

// NewEngineWithTiers creates an engine running the given tiers in order
func NewEngineWithTiers(logger *zap.Logger, tiers ...Tier) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{tiers: tiers, logger: logger}
}

// Delete moves paths to the Trash. Paths that do not exist are reported as
// missing. Paths that survive every tier are reported as protected. An error
// is returned only for a scripting failure that is not a user cancellation;
// the result is still filled in as far as the engine got.
func (e *Engine) Delete(ctx context.Context, paths []string) (types.DeleteResult, error) {
	result := types.DeleteResult{
		Requested: append([]string(nil), paths...),
		Tiers:     make(map[string]types.Tier),
	}

	var pending []string
	seen := make(map[string]bool)
	for _, p := range paths {
		if seen[p] {
			continue
		}
		seen[p] = true
		if !exists(p) {
			result.Missing = append(result.Missing, p)
			continue
		}
		pending = append(pending, p)
	}
	existing := append([]string(nil), pending...)

	protected := make(map[string]bool)
	var escalated []string
	var runErr error

	for i, tier := range e.tiers {
		if len(pending) == 0 || ctx.Err() != nil {
			break
		}
		res, err := tier.Run(ctx, pending)
		if err != nil {
			e.logger.Error("Deletion tier failed", zap.Stringer("tier", tier.Kind()), zap.Error(err))
			runErr = err
			break
		}
		for _, p := range res.Resolved {
			result.Tiers[p] = tier.Kind()
		}
		for _, p := range res.Protected {
			protected[p] = true
		}
		if i == 0 {
			escalated = append(escalated, res.Unresolved...)
		}
		e.logger.Debug("Deletion tier finished",
			zap.Stringer("tier", tier.Kind()),
			zap.Int("resolved", len(res.Resolved)),
			zap.Int("unresolved", len(res.Unresolved)))
		pending = res.Unresolved
		if res.Stop {
			break
		}
	}

	if err := ctx.Err(); err != nil {
		runErr = err
	}

	// Anything the first tier could not move and that is still on disk is protected.
	// An interrupted run says nothing about permissions, so skip it then.
	for _, p := range escalated {
		if ctx.Err() != nil {
			break
		}
		if exists(p) {
			protected[p] = true
		}
	}

	for _, p := range existing {
		if protected[p] {
			result.Protected = append(result.Protected, p)
			delete(result.Tiers, p)
			continue
		}
		if _, ok := result.Tiers[p]; ok {
			result.Removed = append(result.Removed, p)
		}
	}
	sort.Strings(result.Protected)

	e.logger.Info("Deletion finished",
		zap.Int("requested", len(paths)),
		zap.Int("removed", len(result.Removed)),
		zap.Int("missing", len(result.Missing)),
		zap.Int("protected", len(result.Protected)))
	return result, runErr
}

// DirectTier renames each path into the Trash
type DirectTier struct {
	Mover  Mover
	logger *zap.Logger
}

func (t DirectTier) Kind() types.Tier { return types.TierDirect }

func (t DirectTier) Run(ctx context.Context, paths []string) (TierResult, error) {
	var res TierResult
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			res.Unresolved = append(res.Unresolved, p)
			continue
		}
		if err := t.Mover.MoveToTrash(p); err != nil {
			// Gone already, usually because an enclosing directory went first
			if !exists(p) {
				res.Resolved = append(res.Resolved, p)
				continue
			}
			logDebug(t.logger, "Direct trash failed", zap.String("path", p), zap.Error(err))
			res.Unresolved = append(res.Unresolved, p)
			continue
		}
		res.Resolved = append(res.Resolved, p)
	}
	return res, nil
}

// FinderTier asks Finder to trash all remaining paths in one batch
type FinderTier struct {
	Runner ScriptRunner
	logger *zap.Logger
}

func (t FinderTier) Kind() types.Tier { return types.TierFinder }

func (t FinderTier) Run(ctx context.Context, paths []string) (TierResult, error) {
	if _, err := t.Runner.Run(ctx, FinderScript(paths)); err != nil {
		logDebug(t.logger, "Finder trash failed", zap.Int("paths", len(paths)), zap.Error(err))
		return TierResult{Unresolved: paths, Stop: IsCancelled(err)}, nil
	}
	var res TierResult
	for _, p := range paths {
		if exists(p) {
			res.Unresolved = append(res.Unresolved, p)
		} else {
			res.Resolved = append(res.Resolved, p)
		}
	}
	return res, nil
}

// AdminTier moves or force-removes paths with administrator privileges
type AdminTier struct {
	Runner   ScriptRunner
	TrashDir string
	logger   *zap.Logger
}

func (t AdminTier) Kind() types.Tier { return types.TierAdmin }

func (t AdminTier) Run(ctx context.Context, paths []string) (TierResult, error) {
	out, err := t.Runner.Run(ctx, AdminScript(paths, t.TrashDir))
	protected := ParseProtected(out)

	if err != nil {
		if IsCancelled(err) {
			logDebug(t.logger, "Administrator prompt cancelled")
			return TierResult{Unresolved: paths, Protected: protected, Stop: true}, nil
		}
		var se *ScriptError
		if errors.As(err, &se) {
			return TierResult{}, se
		}
		return TierResult{}, &ScriptError{Tier: types.TierAdmin, Message: err.Error(), Output: out}
	}

	marked := make(map[string]bool, len(protected))
	for _, p := range protected {
		marked[p] = true
	}
	res := TierResult{Protected: protected}
	for _, p := range paths {
		if marked[p] || exists(p) {
			res.Unresolved = append(res.Unresolved, p)
		} else {
			res.Resolved = append(res.Resolved, p)
		}
	}
	return res, nil
}

func exists(path string) bool {
	_, err := osLstat(path)
	return err == nil
}

func logDebug(logger *zap.Logger, msg string, fields ...zap.Field) {
	if logger != nil {
		logger.Debug(msg, fields...)
	}
}
