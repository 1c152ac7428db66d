package integration_tests

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"testing"

	"github.com/cashdesk/pettycash.go/common"
	"github.com/cashdesk/pettycash.go/controllers"
	"github.com/cashdesk/pettycash.go/db/models"
	"github.com/cashdesk/pettycash.go/lib/responses"
	"github.com/cashdesk/pettycash.go/lib/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type UserAdminTestSuite struct {
	TestSuite
	service       *service.PettyCashService
	admin         *models.User
	adminToken    string
	employee      *models.User
	employeeToken string
}

func (suite *UserAdminTestSuite) SetupSuite() {
	svc, err := PettyCashTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.service = svc
	suite.echo = newTestEcho(svc)
	if err := clearAllTables(svc); err != nil {
		log.Fatalf("Error clearing tables: %v", err)
	}

	suite.admin, suite.adminToken, err = createTestUser(svc, "Admin", "admin@example.com", "admin123", common.RoleAdmin)
	if err != nil {
		log.Fatalf("Error creating admin: %v", err)
	}
	suite.employee, suite.employeeToken, err = createTestUser(svc, "Employee", "employee@example.com", "emp123", common.RoleEmployee)
	if err != nil {
		log.Fatalf("Error creating employee: %v", err)
	}
}

func (suite *UserAdminTestSuite) TearDownSuite() {
	if err := clearAllTables(suite.service); err != nil {
		log.Fatalf("Error clearing tables: %v", err)
	}
}

func (suite *UserAdminTestSuite) TestListUsersRequiresAdmin() {
	rec := suite.requestJSON(http.MethodGet, "/users", suite.employeeToken, nil)
	errResp := checkErrResponse(&suite.TestSuite, rec, http.StatusForbidden)
	assert.Equal(suite.T(), responses.ForbiddenError.Code, errResp.Code)

	rec = suite.requestJSON(http.MethodGet, "/users", suite.adminToken, nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	users := []models.User{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(&users))
	assert.GreaterOrEqual(suite.T(), len(users), 2)
}

func (suite *UserAdminTestSuite) TestAdminCreatesUser() {
	rec := suite.requestJSON(http.MethodPost, "/users", suite.adminToken, &controllers.CreateUserRequestBody{
		Name:     "New Accountant",
		Email:    "new.accountant@example.com",
		Password: "secret123",
		Role:     "accountant",
	})
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	user := &models.User{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(user))
	assert.Equal(suite.T(), common.RoleAccountant, user.Role)

	// non-admins can not create accounts through this endpoint
	rec = suite.requestJSON(http.MethodPost, "/users", suite.employeeToken, &controllers.CreateUserRequestBody{
		Name:     "Sneaky",
		Email:    "sneaky@example.com",
		Password: "secret123",
		Role:     "admin",
	})
	checkErrResponse(&suite.TestSuite, rec, http.StatusForbidden)
}

func (suite *UserAdminTestSuite) TestDeleteUserCascadesExpenses() {
	ctx := context.Background()
	victim, victimToken, err := createTestUser(suite.service, "Victim", "victim@example.com", "secret123", common.RoleEmployee)
	assert.NoError(suite.T(), err)

	actor := service.Actor{ID: suite.admin.ID, Name: suite.admin.Name, Email: suite.admin.Email, Role: string(suite.admin.Role)}
	fund, err := suite.service.CreateFund(ctx, "Cascade Fund", 50000, actor)
	assert.NoError(suite.T(), err)

	rec := suite.submitExpenseReq(victimToken, fund.ID, 1000, "travel", "taxi", "", nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	rec = suite.requestJSON(http.MethodDelete, fmt.Sprintf("/users/%d", victim.ID), suite.adminToken, nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	_, err = suite.service.FindUser(ctx, victim.ID)
	assert.ErrorIs(suite.T(), err, service.ErrNotFound)

	count, err := suite.service.DB.NewSelect().Model((*models.Expense)(nil)).Where("user_id = ?", victim.ID).Count(ctx)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, count)
}

func (suite *UserAdminTestSuite) TestSelfDeletionRejected() {
	rec := suite.requestJSON(http.MethodDelete, fmt.Sprintf("/users/%d", suite.admin.ID), suite.adminToken, nil)
	errResp := checkErrResponse(&suite.TestSuite, rec, http.StatusBadRequest)
	assert.Equal(suite.T(), responses.SelfDeletionError.Code, errResp.Code)
}

func (suite *UserAdminTestSuite) TestChangePassword() {
	_, token, err := createTestUser(suite.service, "Rotator", "rotator@example.com", "oldpass1", common.RoleEmployee)
	assert.NoError(suite.T(), err)

	// wrong current password is rejected
	rec := suite.requestJSON(http.MethodPatch, "/users/me/password", token, &controllers.ChangePasswordRequestBody{
		CurrentPassword: "nope",
		NewPassword:     "newpass1",
	})
	checkErrResponse(&suite.TestSuite, rec, http.StatusBadRequest)

	rec = suite.requestJSON(http.MethodPatch, "/users/me/password", token, &controllers.ChangePasswordRequestBody{
		CurrentPassword: "oldpass1",
		NewPassword:     "newpass1",
	})
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	_, _, err = suite.service.LoginUser(context.Background(), "rotator@example.com", "oldpass1")
	assert.Error(suite.T(), err)
	_, _, err = suite.service.LoginUser(context.Background(), "rotator@example.com", "newpass1")
	assert.NoError(suite.T(), err)
}

func TestUserAdminTestSuite(t *testing.T) {
	suite.Run(t, new(UserAdminTestSuite))
}
