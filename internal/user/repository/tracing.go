package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/warehouse-inventory/internal/user/domain"
)

var tracer = otel.Tracer("user-repository")

// UserRepositoryWithTracing starts a span around every repository call
type UserRepositoryWithTracing struct {
	next domain.UserRepository
}

// NewUserRepositoryWithTracing wraps next with tracing
func NewUserRepositoryWithTracing(next domain.UserRepository) *UserRepositoryWithTracing {
	return &UserRepositoryWithTracing{next: next}
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (r *UserRepositoryWithTracing) Create(ctx context.Context, user *domain.User) (err error) {
	ctx, span := tracer.Start(ctx, "repository.User.Create",
		trace.WithAttributes(attribute.String("user.email", user.Email)),
	)
	defer func() { finish(span, err) }()

	if err = r.next.Create(ctx, user); err == nil {
		span.SetAttributes(attribute.String("user.id", user.ID))
	}
	return err
}

func (r *UserRepositoryWithTracing) FindByID(ctx context.Context, id string) (user *domain.User, err error) {
	ctx, span := tracer.Start(ctx, "repository.User.FindByID",
		trace.WithAttributes(attribute.String("user.id", id)),
	)
	defer func() { finish(span, err) }()

	return r.next.FindByID(ctx, id)
}

func (r *UserRepositoryWithTracing) FindByEmail(ctx context.Context, email string) (user *domain.User, err error) {
	ctx, span := tracer.Start(ctx, "repository.User.FindByEmail",
		trace.WithAttributes(attribute.String("user.email", email)),
	)
	defer func() { finish(span, err) }()

	return r.next.FindByEmail(ctx, email)
}

func (r *UserRepositoryWithTracing) FindAll(ctx context.Context, filter domain.UserFilter) (users []domain.User, total int64, err error) {
	ctx, span := tracer.Start(ctx, "repository.User.FindAll",
		trace.WithAttributes(
			attribute.String("filter.role", filter.Role),
			attribute.Int("filter.limit", filter.Limit),
			attribute.Int("filter.offset", filter.Offset),
		),
	)
	defer func() { finish(span, err) }()

	users, total, err = r.next.FindAll(ctx, filter)
	span.SetAttributes(attribute.Int("users.count", len(users)))
	return users, total, err
}

func (r *UserRepositoryWithTracing) Update(ctx context.Context, user *domain.User) (err error) {
	ctx, span := tracer.Start(ctx, "repository.User.Update",
		trace.WithAttributes(attribute.String("user.id", user.ID)),
	)
	defer func() { finish(span, err) }()

	return r.next.Update(ctx, user)
}

func (r *UserRepositoryWithTracing) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracer.Start(ctx, "repository.User.Delete",
		trace.WithAttributes(attribute.String("user.id", id)),
	)
	defer func() { finish(span, err) }()

	return r.next.Delete(ctx, id)
}

func (r *UserRepositoryWithTracing) Count(ctx context.Context) (count int64, err error) {
	ctx, span := tracer.Start(ctx, "repository.User.Count")
	defer func() { finish(span, err) }()

	return r.next.Count(ctx)
}

func (r *UserRepositoryWithTracing) CountByRole(ctx context.Context, role string) (count int64, err error) {
	ctx, span := tracer.Start(ctx, "repository.User.CountByRole",
		trace.WithAttributes(attribute.String("user.role", role)),
	)
	defer func() { finish(span, err) }()

	return r.next.CountByRole(ctx, role)
}

func (r *UserRepositoryWithTracing) CountActive(ctx context.Context) (count int64, err error) {
	ctx, span := tracer.Start(ctx, "repository.User.CountActive")
	defer func() { finish(span, err) }()

	return r.next.CountActive(ctx)
}
