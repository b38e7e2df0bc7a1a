package controller

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stimlink/savings-ledger/src/internal/adapter/http/middleware"
	"github.com/stimlink/savings-ledger/src/internal/adapter/http/models"
	"github.com/stimlink/savings-ledger/src/internal/commons"
	"github.com/stimlink/savings-ledger/src/internal/domain"
)

var errStub = errors.New("stub failure")

type stubAccountService struct {
	registerFn       func(ctx context.Context, req models.SignupRequest) (commons.Response[models.AccountResponse], error)
	loginFn          func(ctx context.Context, req models.LoginRequest) (commons.Response[models.AccountResponse], error)
	forgotPasswordFn func(ctx context.Context, req models.ForgotPasswordRequest) (commons.Response[models.ForgotPasswordResponse], error)
	dashboardFn      func(ctx context.Context, accountNumber string) (commons.Response[models.DashboardResponse], error)
}

func (s stubAccountService) Register(ctx context.Context, req models.SignupRequest) (commons.Response[models.AccountResponse], error) {
	return s.registerFn(ctx, req)
}

func (s stubAccountService) Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.AccountResponse], error) {
	return s.loginFn(ctx, req)
}

func (s stubAccountService) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) (commons.Response[models.ForgotPasswordResponse], error) {
	return s.forgotPasswordFn(ctx, req)
}

func (s stubAccountService) Dashboard(ctx context.Context, accountNumber string) (commons.Response[models.DashboardResponse], error) {
	return s.dashboardFn(ctx, accountNumber)
}

type stubLedgerService struct {
	adminOperationFn func(ctx context.Context, accountNumber string, req models.AdminOperationRequest, actor string) (commons.Response[models.LedgerOperationResponse], error)
}

func (s stubLedgerService) AdminOperation(ctx context.Context, accountNumber string, req models.AdminOperationRequest, actor string) (commons.Response[models.LedgerOperationResponse], error) {
	return s.adminOperationFn(ctx, accountNumber, req, actor)
}

type stubStatementService struct {
	statementFn func(ctx context.Context, accountNumber string) (commons.Response[models.StatementResponse], error)
	writeCSVFn  func(w io.Writer, statement models.StatementResponse) error
}

func (s stubStatementService) Statement(ctx context.Context, accountNumber string) (commons.Response[models.StatementResponse], error) {
	return s.statementFn(ctx, accountNumber)
}

func (s stubStatementService) WriteCSV(w io.Writer, statement models.StatementResponse) error {
	return s.writeCSVFn(w, statement)
}

type stubChargesService struct {
	getChargesSummaryFn func(ctx context.Context, req models.GetChargesRequest) (commons.Response[models.GetChargesResponse], error)
}

func (s stubChargesService) GetChargesSummary(ctx context.Context, req models.GetChargesRequest) (commons.Response[models.GetChargesResponse], error) {
	return s.getChargesSummaryFn(ctx, req)
}

type stubNewsService struct {
	listFn           func(ctx context.Context) (commons.Response[[]models.NewsResponse], error)
	listForAccountFn func(ctx context.Context, accountID int64) (commons.Response[[]models.NewsResponse], error)
	publishFn        func(ctx context.Context, req models.PublishNewsRequest) (commons.Response[models.NewsResponse], error)
	deleteFn         func(ctx context.Context, id int64) (commons.Response[struct{}], error)
}

func (s stubNewsService) List(ctx context.Context) (commons.Response[[]models.NewsResponse], error) {
	return s.listFn(ctx)
}

func (s stubNewsService) ListForAccount(ctx context.Context, accountID int64) (commons.Response[[]models.NewsResponse], error) {
	return s.listForAccountFn(ctx, accountID)
}

func (s stubNewsService) Publish(ctx context.Context, req models.PublishNewsRequest) (commons.Response[models.NewsResponse], error) {
	return s.publishFn(ctx, req)
}

func (s stubNewsService) Delete(ctx context.Context, id int64) (commons.Response[struct{}], error) {
	return s.deleteFn(ctx, id)
}

type stubDirectorService struct {
	resetPasswordFn func(ctx context.Context, req models.PasswordResetRequest) (commons.Response[models.PasswordResetResponse], error)
}

func (s stubDirectorService) ResetPassword(ctx context.Context, req models.PasswordResetRequest) (commons.Response[models.PasswordResetResponse], error) {
	return s.resetPasswordFn(ctx, req)
}

type stubAccountAuthenticator struct {
	account domain.Account
}

func (s stubAccountAuthenticator) Authenticate(_ context.Context, identifier string, password string) (domain.Account, error) {
	if identifier != s.account.Username || password != "pw" {
		return domain.Account{}, domain.ErrInvalidCredentials
	}
	return s.account, nil
}

type stubStaffAuthenticator struct {
	member domain.StaffMember
}

func (s stubStaffAuthenticator) Authenticate(_ context.Context, role domain.StaffRole, username string, password string) (domain.StaffMember, error) {
	if role != s.member.Role || username != s.member.Username || password != "pw" {
		return domain.StaffMember{}, domain.ErrInvalidCredentials
	}
	return s.member, nil
}

type routeRegistrar interface {
	RegisterRoutes(r chi.Router, auth func(http.Handler) http.Handler)
}

func newTestRouter(c routeRegistrar, auth func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	c.RegisterRoutes(r, auth)
	return r
}

func testUserAuth() func(http.Handler) http.Handler {
	return middleware.UserAuth(stubAccountAuthenticator{account: domain.Account{
		ID:            7,
		AccountNumber: "STL-111-222-333",
		Username:      "KABILAJOSEPH",
	}})
}

func testStaffAuth(role domain.StaffRole) func(http.Handler) http.Handler {
	return middleware.StaffAuth(stubStaffAuthenticator{member: domain.StaffMember{
		ID:       1,
		Username: string(role),
		Role:     role,
	}}, role)
}
