package integration_tests

import (
	"context"
	"log"
	"testing"

	"github.com/cashdesk/pettycash.go/common"
	"github.com/cashdesk/pettycash.go/db/models"
	"github.com/cashdesk/pettycash.go/lib/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type StatsTestSuite struct {
	TestSuite
	service       *service.PettyCashService
	admin         *models.User
	employeeToken string
	accountant    *models.User
}

func (suite *StatsTestSuite) SetupSuite() {
	svc, err := PettyCashTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.service = svc
	suite.echo = newTestEcho(svc)
	if err := clearAllTables(svc); err != nil {
		log.Fatalf("Error clearing tables: %v", err)
	}

	suite.admin, _, err = createTestUser(svc, "Admin", "stats.admin@example.com", "admin123", common.RoleAdmin)
	if err != nil {
		log.Fatalf("Error creating admin: %v", err)
	}
	_, suite.employeeToken, err = createTestUser(svc, "Employee", "stats.employee@example.com", "emp123", common.RoleEmployee)
	if err != nil {
		log.Fatalf("Error creating employee: %v", err)
	}
	suite.accountant, _, err = createTestUser(svc, "Accountant", "stats.accountant@example.com", "acc123", common.RoleAccountant)
	if err != nil {
		log.Fatalf("Error creating accountant: %v", err)
	}
}

func (suite *StatsTestSuite) TearDownSuite() {
	if err := clearAllTables(suite.service); err != nil {
		log.Fatalf("Error clearing tables: %v", err)
	}
}

func (suite *StatsTestSuite) TestStatsReflectLedger() {
	ctx := context.Background()
	adminActor := service.Actor{ID: suite.admin.ID, Name: suite.admin.Name, Email: suite.admin.Email, Role: string(suite.admin.Role)}
	approver := service.Actor{ID: suite.accountant.ID, Name: suite.accountant.Name, Email: suite.accountant.Email, Role: string(suite.accountant.Role)}

	fundA, err := suite.service.CreateFund(ctx, "Stats Fund A", 100000, adminActor)
	assert.NoError(suite.T(), err)
	fundB, err := suite.service.CreateFund(ctx, "Stats Fund B", 50000, adminActor)
	assert.NoError(suite.T(), err)

	travel := suite.submitExpense(suite.employeeToken, fundA.ID, 20000, "travel")
	meals := suite.submitExpense(suite.employeeToken, fundA.ID, 5000, "meals")
	travel2 := suite.submitExpense(suite.employeeToken, fundB.ID, 10000, "travel")
	suite.submitExpense(suite.employeeToken, fundB.ID, 3000, "misc") // stays pending

	for _, expense := range []*models.Expense{travel, meals, travel2} {
		_, err := suite.service.UpdateExpenseStatus(ctx, approver, expense.ID, common.ExpenseStatusApproved)
		assert.NoError(suite.T(), err)
	}

	stats, err := suite.service.GetStats(ctx)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(35000), stats.TotalApprovedExpenses)
	assert.Equal(suite.T(), 1, stats.PendingRequests)
	// 100000 - 25000 + 50000 - 10000
	assert.Equal(suite.T(), int64(115000), stats.AvailableLiquidity)

	// categories are ordered by approved spend, pending claims excluded
	assert.Equal(suite.T(), 2, len(stats.CategoryStats))
	assert.Equal(suite.T(), "travel", stats.CategoryStats[0].Category)
	assert.Equal(suite.T(), int64(30000), stats.CategoryStats[0].Total)
	assert.Equal(suite.T(), "meals", stats.CategoryStats[1].Category)
	assert.Equal(suite.T(), int64(5000), stats.CategoryStats[1].Total)
}

// submitExpense mirrors the helper on ExpenseTestSuite for this suite.
func (suite *StatsTestSuite) submitExpense(token string, fundId, amount int64, category string) *models.Expense {
	rec := suite.submitExpenseReq(token, fundId, amount, category, "", "", nil)
	assert.Equal(suite.T(), 200, rec.Code)
	expense := &models.Expense{}
	assert.NoError(suite.T(), decodeBody(rec, expense))
	return expense
}

func TestStatsTestSuite(t *testing.T) {
	suite.Run(t, new(StatsTestSuite))
}
