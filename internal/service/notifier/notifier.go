package notifier

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmdesk/internal/domain/models"
	"github.com/mamadbah2/farmdesk/internal/repository/mongodb"
	"github.com/mamadbah2/farmdesk/pkg/clients/push"
	"github.com/mamadbah2/farmdesk/pkg/metrics"
)

// GoalStore defines the goal operations required by the notifier.
type GoalStore interface {
	ListOpenByTarget(ctx context.Context, userID string, goalType models.GoalType, productID string) ([]models.Goal, error)
	ListAllOpen(ctx context.Context) ([]models.Goal, error)
	MarkNotified(ctx context.Context, goalID primitive.ObjectID, userID string) (bool, error)
}

// QuantitySummer aggregates the cumulative record quantity for one
// (user, product) pair.
type QuantitySummer interface {
	SumQuantityByProduct(ctx context.Context, userID string, productID string) (float64, error)
}

// NotificationStore persists the in-app notification a crossing produces.
type NotificationStore interface {
	Create(ctx context.Context, n models.Notification) (string, error)
}

// UserStore resolves the recipient's push token for best-effort delivery.
type UserStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// Notifier maintains the goal-crossing invariant: a goal's notified flag
// becomes true at most once, exactly when the cumulative quantity of matching
// records first reaches its target, and exactly one notification document is
// created per such transition.
//
// Each triggering event re-reads the full aggregate sum rather than applying
// a delta, so correctness does not depend on cross-collection event ordering.
// The notified transition itself is a conditional update on the store; the
// loser of a concurrent evaluation observes no transition and stays silent.
type Notifier struct {
	goals         GoalStore
	sales         QuantitySummer
	productions   QuantitySummer
	notifications NotificationStore
	users         UserStore
	push          push.Client
	logger        *zap.Logger
}

// New wires a notifier. push may be nil, which disables the best-effort push
// mirror and keeps the in-app notification path intact.
func New(goals GoalStore, sales, productions QuantitySummer, notifications NotificationStore, users UserStore, pushClient push.Client, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{
		goals:         goals,
		sales:         sales,
		productions:   productions,
		notifications: notifications,
		users:         users,
		push:          pushClient,
		logger:        logger,
	}
}

// Run consumes change events until ctx is cancelled or the channel closes.
// Per-event failures are logged and dropped; the periodic sweep re-evaluates
// open goals, so a crossing missed here is picked up later.
func (n *Notifier) Run(ctx context.Context, events <-chan mongodb.Change) {
	n.logger.Info("goal notifier started")
	for {
		select {
		case <-ctx.Done():
			n.logger.Info("goal notifier stopped")
			return
		case ev, ok := <-events:
			if !ok {
				n.logger.Info("event channel closed, goal notifier stopped")
				return
			}
			if err := n.handle(ctx, ev); err != nil {
				metrics.GoalEvaluationFailures.Inc()
				n.logger.Error("dropped change event",
					zap.String("collection", ev.Collection),
					zap.String("kind", string(ev.Kind)),
					zap.Error(err))
			}
		}
	}
}

// Sweep re-evaluates every open goal. Scheduled periodically so transient
// evaluation failures heal even when no further record writes occur.
func (n *Notifier) Sweep(ctx context.Context) error {
	start := time.Now()
	defer func() { metrics.SweepDuration.Observe(time.Since(start).Seconds()) }()

	goals, err := n.goals.ListAllOpen(ctx)
	if err != nil {
		return fmt.Errorf("sweep: %w", err)
	}

	var failed int
	for _, goal := range goals {
		if err := n.evaluate(ctx, goal); err != nil {
			failed++
			n.logger.Warn("sweep evaluation failed", zap.String("goal_id", goal.ID.Hex()), zap.Error(err))
		}
	}

	n.logger.Info("goal sweep completed", zap.Int("open_goals", len(goals)), zap.Int("failed", failed))
	return nil
}

func (n *Notifier) handle(ctx context.Context, ev mongodb.Change) error {
	if ev.Kind == mongodb.ChangeRemoved {
		return nil
	}

	switch ev.Collection {
	case mongodb.CollGoals:
		var goal models.Goal
		if err := bson.Unmarshal(ev.Doc, &goal); err != nil {
			return fmt.Errorf("decode goal event: %w", err)
		}
		if goal.Notified {
			return nil
		}
		return n.evaluate(ctx, goal)

	case mongodb.CollSales:
		return n.evaluateRecordEvent(ctx, ev, models.GoalSale)

	case mongodb.CollProductions:
		return n.evaluateRecordEvent(ctx, ev, models.GoalProduction)
	}

	return nil
}

func (n *Notifier) evaluateRecordEvent(ctx context.Context, ev mongodb.Change, goalType models.GoalType) error {
	var record struct {
		OwnerID   string `bson:"owner_id"`
		ProductID string `bson:"product_id"`
	}
	if err := bson.Unmarshal(ev.Doc, &record); err != nil {
		return fmt.Errorf("decode %s event: %w", ev.Collection, err)
	}
	if record.OwnerID == "" || record.ProductID == "" {
		return nil
	}

	goals, err := n.goals.ListOpenByTarget(ctx, record.OwnerID, goalType, record.ProductID)
	if err != nil {
		return fmt.Errorf("list open goals for product %s: %w", record.ProductID, err)
	}

	// One failing goal must not starve its siblings on the same event.
	var firstErr error
	for _, goal := range goals {
		if err := n.evaluate(ctx, goal); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			n.logger.Warn("goal evaluation failed",
				zap.String("goal_id", goal.ID.Hex()), zap.Error(err))
		}
	}
	return firstErr
}

// evaluate performs one crossing check for a single goal.
func (n *Notifier) evaluate(ctx context.Context, goal models.Goal) error {
	metrics.GoalEvaluationsTotal.Inc()

	summer := n.sales
	if goal.Type == models.GoalProduction {
		summer = n.productions
	}

	sum, err := summer.SumQuantityByProduct(ctx, goal.OwnerID, goal.ProductID)
	if err != nil {
		return fmt.Errorf("sum %s quantity: %w", goal.Type, err)
	}
	if sum < goal.TargetQuantity {
		return nil
	}

	claimed, err := n.goals.MarkNotified(ctx, goal.ID, goal.OwnerID)
	if err != nil {
		return fmt.Errorf("mark goal notified: %w", err)
	}
	if !claimed {
		// Another evaluation already owns this crossing.
		return nil
	}

	message := goalMessage(goal, sum)
	if _, err := n.notifications.Create(ctx, models.Notification{
		UserID:    goal.OwnerID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		// The goal is already marked; surfacing the error would not undo
		// the transition. The user loses this one in-app message.
		n.logger.Error("failed to create crossing notification",
			zap.String("goal_id", goal.ID.Hex()), zap.Error(err))
	}

	metrics.GoalsNotifiedTotal.WithLabelValues(string(goal.Type)).Inc()
	n.logger.Info("goal target reached",
		zap.String("goal_id", goal.ID.Hex()),
		zap.String("type", string(goal.Type)),
		zap.String("product_id", goal.ProductID),
		zap.Float64("total", sum),
		zap.Float64("target", goal.TargetQuantity))

	n.mirrorToPush(ctx, goal.OwnerID, message)
	return nil
}

func (n *Notifier) mirrorToPush(ctx context.Context, userID string, message string) {
	if n.push == nil {
		return
	}

	user, err := n.users.FindByID(ctx, userID)
	if err != nil || user == nil || user.PushToken == "" {
		return
	}

	_, err = n.push.SendPush(ctx, push.SendPushRequest{
		To:    user.PushToken,
		Title: "Goal reached",
		Body:  message,
	})
	if err != nil {
		metrics.PushDeliveriesFailed.Inc()
		n.logger.Warn("push mirror failed", zap.String("user_id", userID), zap.Error(err))
	}
}

func goalMessage(goal models.Goal, sum float64) string {
	kind := "Sales"
	if goal.Type == models.GoalProduction {
		kind = "Production"
	}
	return fmt.Sprintf("%s goal reached: product %s hit %.0f of %.0f.", kind, goal.ProductID, sum, goal.TargetQuantity)
}
