package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"corner/internal/domain/model"
	"corner/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWilaya_CreateAndDuplicateCode(t *testing.T) {
	e := newEnv(t)
	admin := e.user(t, "admin", model.RoleSuperAdmin)

	w, err := e.wilayaU.Create(context.Background(), admin, usecase.CreateWilayaInput{Code: 16, Name: "Alger"})
	require.NoError(t, err)
	assert.Equal(t, 16, w.Code)

	_, err = e.wilayaU.Create(context.Background(), admin, usecase.CreateWilayaInput{Code: 16, Name: "Algiers"})
	assertConflict(t, err, "Wilaya code already exists")

	_, err = e.wilayaU.Create(context.Background(), admin, usecase.CreateWilayaInput{Code: 0, Name: "Zero"})
	assertHTTPError(t, err, http.StatusBadRequest, "Code must be positive")

	list, err := e.wilayaU.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestWilaya_Update(t *testing.T) {
	e := newEnv(t)
	admin := e.user(t, "admin", model.RoleSuperAdmin)
	w := e.wilaya(t, 16, "Alger")
	e.wilaya(t, 31, "Oran")

	taken := 31
	_, err := e.wilayaU.Update(context.Background(), admin, w.ID, usecase.UpdateWilayaInput{Code: &taken})
	assertConflict(t, err, "Wilaya code already exists")

	updated, err := e.wilayaU.Update(context.Background(), admin, w.ID, usecase.UpdateWilayaInput{Name: strPtr("Algiers")})
	require.NoError(t, err)
	assert.Equal(t, "Algiers", updated.Name)
}

func TestWilaya_AssignManager(t *testing.T) {
	e := newEnv(t)
	admin := e.user(t, "admin", model.RoleSuperAdmin)
	alger := e.wilaya(t, 16, "Alger")
	oran := e.wilaya(t, 31, "Oran")
	a := e.user(t, "m-a", model.RoleManager)
	b := e.user(t, "m-b", model.RoleManager)

	w, err := e.wilayaU.AssignManager(context.Background(), admin, alger.ID, a.ID)
	require.NoError(t, err)
	require.NotNil(t, w.Manager)
	assert.Equal(t, a.ID, w.Manager.ID)

	_, err = e.wilayaU.AssignManager(context.Background(), admin, alger.ID, b.ID)
	assertConflict(t, err, "Wilaya already has a manager")

	_, err = e.wilayaU.AssignManager(context.Background(), admin, oran.ID, a.ID)
	assertConflict(t, err, "Manager is already assigned to another wilaya")

	_, err = e.wilayaU.AssignManager(context.Background(), admin, oran.ID, admin.ID)
	assertHTTPError(t, err, http.StatusBadRequest, "User is not a manager")
}

func TestWilaya_DeleteGuards(t *testing.T) {
	e := newEnv(t)
	admin := e.user(t, "admin", model.RoleSuperAdmin)
	managed := e.wilaya(t, 16, "Alger")
	withShops := e.wilaya(t, 31, "Oran")
	empty := e.wilaya(t, 9, "Blida")
	e.user(t, "m", model.RoleManager, withWilaya(managed.ID))
	e.restaurant(t, "Shop", withShops.ID)

	assertConflict(t, e.wilayaU.Delete(context.Background(), admin, managed.ID), "Wilaya still has a manager")
	assertConflict(t, e.wilayaU.Delete(context.Background(), admin, withShops.ID), "Wilaya still has restaurants")
	require.NoError(t, e.wilayaU.Delete(context.Background(), admin, empty.ID))

	_, err := e.wilayaU.Get(context.Background(), empty.ID)
	assertHTTPError(t, err, http.StatusNotFound, "Wilaya not found")
}
