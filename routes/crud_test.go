package routes

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ExpenseTracker/models"
	"ExpenseTracker/pkg/messages"
)

func TestCategoriesRequireToken(t *testing.T) {
	app := newTestApp(t)
	w := performRequest(app.engine, http.MethodPost, "/api/categories", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, messages.TokenNotFound, message(t, w))
}

func TestCategoryLifecycle(t *testing.T) {
	app := newTestApp(t)
	raw := app.loginTestUser(t)
	do := func(method, path, body string) (int, string) {
		var b any
		if body != "" {
			b = body
		}
		w := performRequest(app.engine, method, path, raw, b)
		return w.Code, w.Body.String()
	}

	code, body := do(http.MethodPost, "/api/categories", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[{"id":1,"name":"Food","description":"Food category for test"}]`, body)

	code, body = do(http.MethodPost, "/api/addCategory", `{"description":"no name"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.JSONEq(t, `{"message":"The field 'name' is required."}`, body)

	code, body = do(http.MethodPost, "/api/addCategory", `{"name":"Travel","description":"Trips"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"message":"Category added successfully!"}`, body)

	code, body = do(http.MethodPut, "/api/editCategory", `{"id":2,"name":""}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.JSONEq(t, `{"message":"`+messages.NoName+`"}`, body)

	code, body = do(http.MethodPut, "/api/editCategory", `{"id":99,"name":"X"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.JSONEq(t, `{"message":"No category found for id 99"}`, body)

	code, body = do(http.MethodPut, "/api/editCategory", `{"id":2,"name":"Travel"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.JSONEq(t, `{"message":"`+messages.UnexpectedError+`"}`, body)

	code, body = do(http.MethodPut, "/api/editCategory", `{"id":2,"name":"Holidays"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"message":"Category updated successfully!"}`, body)

	// deleting Food detaches the fixture expense
	code, body = do(http.MethodDelete, "/api/deleteCategory/1", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"message":"Category removed successfully!"}`, body)

	var expense models.Expense
	require.NoError(t, app.db.First(&expense).Error)
	assert.Nil(t, expense.CategoryID)

	code, _ = do(http.MethodDelete, "/api/deleteCategory/1", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = do(http.MethodPost, "/api/categories", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[{"id":2,"name":"Holidays","description":"Trips"}]`, body)
}

type expenseList struct {
	Expenses []models.ExpenseView `json:"expenses"`
}

func (a *testApp) expenses(t *testing.T, raw string) []models.ExpenseView {
	t.Helper()
	w := performRequest(a.engine, http.MethodPost, "/api/expenses", raw, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list expenseList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	return list.Expenses
}

func TestListExpenses(t *testing.T) {
	app := newTestApp(t)
	raw := app.loginTestUser(t)

	w := performRequest(app.engine, http.MethodPost, "/api/expenses", raw, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"expenses":[{"id":1,"title":"Groceries","amount":50.25,"date":"2024-05-21","category":"Food","description":"Purchased groceries for the week"}]}`, w.Body.String())
}

func TestAddExpense(t *testing.T) {
	app := newTestApp(t)
	raw := app.loginTestUser(t)

	tests := []struct {
		body string
		code int
		msg  string
	}{
		{`{"amount":1,"date":"2024-06-01","category":"Food","description":"d"}`, http.StatusBadRequest, "The field 'title' is missing."},
		{`{"title":"","amount":1,"date":"2024-06-01","category":"Food","description":"d"}`, http.StatusBadRequest, messages.NoTitle},
		{`{"title":"Taxi","amount":0,"date":"2024-06-01","category":"Food","description":"d"}`, http.StatusBadRequest, messages.NoAmount},
		{`{"title":"Taxi","amount":"abc","date":"2024-06-01","category":"Food","description":"d"}`, http.StatusBadRequest, messages.InvalidInput},
		{`{"title":"Taxi","amount":12.5,"date":"June","category":"Food","description":"d"}`, http.StatusBadRequest, messages.InvalidInput},
		{`{"title":"Taxi","amount":12.5,"date":"2024-06-01","category":"Transport","description":"Airport"}`, http.StatusOK, "Expense added successfully!"},
	}
	for _, tt := range tests {
		w := performRequest(app.engine, http.MethodPost, "/api/addExpense", raw, tt.body)
		assert.Equal(t, tt.code, w.Code, tt.body)
		assert.Equal(t, tt.msg, message(t, w), tt.body)
	}

	var category models.Category
	require.NoError(t, app.db.Where("name = ?", "Transport").First(&category).Error, "category is created on demand")
	assert.Empty(t, category.Description)

	list := app.expenses(t, raw)
	require.Len(t, list, 2)
	assert.Equal(t, "Taxi", list[0].Title)
	require.NotNil(t, list[0].Category)
	assert.Equal(t, "Transport", *list[0].Category)
}

func TestEditExpense(t *testing.T) {
	app := newTestApp(t)
	raw := app.loginTestUser(t)

	tests := []struct {
		body string
		code int
		msg  string
	}{
		{`{"id":1,"title":""}`, http.StatusBadRequest, messages.NoTitle},
		{`{"id":42,"title":"X"}`, http.StatusBadRequest, "No expense found for id 42"},
		{`{"id":1,"category":"Nope"}`, http.StatusBadRequest, "No category found for name Nope"},
		{`{"id":1,"title":"Groceries","amount":50.25,"date":"2024-05-21"}`, http.StatusBadRequest, messages.UnexpectedError},
		{`{"id":1,"title":"Weekly shop","amount":"61.10","date":"2024-05-22"}`, http.StatusOK, "Expense edited successfully!"},
	}
	for _, tt := range tests {
		w := performRequest(app.engine, http.MethodPost, "/api/editExpense", raw, tt.body)
		assert.Equal(t, tt.code, w.Code, tt.body)
		assert.Equal(t, tt.msg, message(t, w), tt.body)
	}

	list := app.expenses(t, raw)
	require.Len(t, list, 1)
	assert.Equal(t, "Weekly shop", list[0].Title)
	assert.Equal(t, 61.10, list[0].Amount)
	assert.Equal(t, "2024-05-22", list[0].Date)
}

func TestNonFiniteAmountsAreRejected(t *testing.T) {
	app := newTestApp(t)
	raw := app.loginTestUser(t)

	for _, amount := range []string{"NaN", "Inf", "-Infinity", "+inf"} {
		add := `{"title":"Taxi","amount":"` + amount + `","date":"2024-06-01","category":"Food","description":"d"}`
		w := performRequest(app.engine, http.MethodPost, "/api/addExpense", raw, add)
		assert.Equal(t, http.StatusBadRequest, w.Code, amount)
		assert.Equal(t, messages.InvalidInput, message(t, w), amount)

		edit := `{"id":1,"amount":"` + amount + `"}`
		w = performRequest(app.engine, http.MethodPost, "/api/editExpense", raw, edit)
		assert.Equal(t, http.StatusBadRequest, w.Code, amount)
		assert.Equal(t, messages.InvalidInput, message(t, w), amount)
	}

	list := app.expenses(t, raw)
	require.Len(t, list, 1)
	assert.Equal(t, 50.25, list[0].Amount)
}

func TestExpensesAreScopedToUser(t *testing.T) {
	app := newTestApp(t)
	w := performRequest(app.engine, http.MethodPost, "/api/register", "",
		`{"firstName":"Eve","lastName":"E","email":"eve@example.com","password":"password","passwordConfirmation":"password"}`)
	require.Equal(t, http.StatusOK, w.Code)
	eve := app.login(t, "eve@example.com", "password")

	assert.Empty(t, app.expenses(t, eve))

	w = performRequest(app.engine, http.MethodPost, "/api/editExpense", eve, `{"id":1,"title":"Mine now"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(app.engine, http.MethodPost, "/api/deleteExpense", eve, `{"id":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No expense found for id 1", message(t, w))
}

func TestDeleteExpense(t *testing.T) {
	app := newTestApp(t)
	raw := app.loginTestUser(t)

	w := performRequest(app.engine, http.MethodPost, "/api/deleteExpense", raw, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No id provided", message(t, w))

	w = performRequest(app.engine, http.MethodPost, "/api/deleteExpense", raw, `{"id":1}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Expense deleted", message(t, w))

	assert.Empty(t, app.expenses(t, raw))
}

func TestCategoryExpensesAndStatus(t *testing.T) {
	app := newTestApp(t)
	raw := app.loginTestUser(t)

	w := performRequest(app.engine, http.MethodPost, "/api/addExpense", raw,
		`{"title":"Bus","amount":2.75,"date":"2024-05-23","category":"Transport","description":"Ticket"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(app.engine, http.MethodGet, "/api/categories/1/expenses", raw, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list expenseList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Expenses, 1)
	assert.Equal(t, "Groceries", list.Expenses[0].Title)

	w = performRequest(app.engine, http.MethodGet, "/api/categories/99/expenses", raw, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(app.engine, http.MethodPost, "/api/user/status", raw, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"user_status": {"firstName":"testName","lastName":"testLastName","email":"test@test.com","roles":["ROLE_USER"]},
		"stats": {"expenseCount":2,"categoryCount":2,"totalAmount":53}
	}`, w.Body.String())
}
