package user

import (
	"context"
	"testing"

	"styledecor/models"
	"styledecor/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitApplication(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	d, err := svc.SubmitApplication(ctx, models.DecoratorApplication{Email: "d@x.com", Name: "Dana", Experience: 4})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, d.ApplicationStatus)
	assert.Equal(t, models.RoleUser, d.Role)
	assert.Equal(t, models.DecoratorStatusInactive, d.Status)

	_, err = svc.SubmitApplication(ctx, models.DecoratorApplication{Email: "d@x.com", Name: "Dana"})
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))

	_, err = svc.SubmitApplication(ctx, models.DecoratorApplication{Email: "e@x.com"})
	assert.Equal(t, utils.KindInvalidInput, utils.KindOf(err))
}

func TestListDecorators(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)
	seedApplicant(store, "pending@x.com", false)
	for i, email := range []string{"a@x.com", "b@x.com", "c@x.com", "e@x.com"} {
		store.Decorators().Seed(models.Decorator{
			Email:             email,
			ApplicationStatus: models.ApplicationApproved,
			Role:              models.RoleDecorator,
			Status:            models.DecoratorStatusAvailable,
			Experience:        i + 1,
		})
	}

	public, err := svc.ListDecorators(ctx, nil, models.ApplicationPending)
	require.NoError(t, err)
	assert.Len(t, public, 4, "anonymous callers only see approved decorators")

	asUser, err := svc.ListDecorators(ctx, &customer, "")
	require.NoError(t, err)
	assert.Len(t, asUser, 4)

	pending, err := svc.ListDecorators(ctx, &admin, models.ApplicationPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "pending@x.com", pending[0].Email)

	all, err := svc.ListDecorators(ctx, &admin, "")
	require.NoError(t, err)
	assert.Len(t, all, 5)

	_, err = svc.ListDecorators(ctx, &admin, "archived")
	assert.Equal(t, utils.KindInvalidInput, utils.KindOf(err))

	top, err := svc.TopDecorators(ctx)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, []int{4, 3, 2}, []int{top[0].Experience, top[1].Experience, top[2].Experience})
}

func TestSetAvailability(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)
	dec := models.Caller{Email: "d@x.com", Role: models.RoleDecorator, Status: models.DecoratorStatusAvailable}
	store.Decorators().Seed(models.Decorator{
		Email:             dec.Email,
		ApplicationStatus: models.ApplicationApproved,
		Role:              models.RoleDecorator,
		Status:            models.DecoratorStatusAvailable,
	})
	pending := seedApplicant(store, "p@x.com", false)

	res, err := svc.SetAvailability(ctx, dec, dec.Email, models.DecoratorStatusInactive)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ModifiedCount)

	_, err = svc.SetAvailability(ctx, dec, dec.Email, models.DecoratorStatusBanned)
	assert.Equal(t, utils.KindInvalidInput, utils.KindOf(err))

	_, err = svc.SetAvailability(ctx, dec, "other@x.com", models.DecoratorStatusAvailable)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))

	_, err = svc.SetAvailability(ctx, admin, pending.Email, models.DecoratorStatusAvailable)
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))

	_, err = svc.SetAvailability(ctx, customer, customer.Email, models.DecoratorStatusAvailable)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))
}
