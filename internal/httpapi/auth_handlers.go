package httpapi

import (
	"github.com/juan-009/authguard/core/binder"
	"github.com/juan-009/authguard/core/handler"
	"github.com/juan-009/authguard/core/response"
	"github.com/juan-009/authguard/core/router"
	"github.com/juan-009/authguard/core/validator"
	"github.com/juan-009/authguard/internal/authcoordinator"
	"github.com/juan-009/authguard/pkg/apierr"
	"github.com/juan-009/authguard/pkg/clientip"
	"github.com/juan-009/authguard/pkg/fingerprint"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	MFACode  string `json:"mfa_code"`
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func toLoginResponse(r *authcoordinator.LoginResult) loginResponse {
	return loginResponse{AccessToken: r.AccessToken, RefreshToken: r.RefreshToken, ExpiresIn: r.ExpiresIn}
}

// loginHandler implements POST /auth/login.
func loginHandler(coord *authcoordinator.Coordinator) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		var req loginRequest
		if err := binder.JSON()(ctx.Request(), &req); err != nil {
			return badRequest(err)
		}
		if err := validator.ValidateStruct(&req); err != nil {
			return badRequest(err)
		}

		ip := clientip.GetIP(ctx.Request())
		ua := ctx.Request().UserAgent()
		fp := fingerprint.Generate(ctx.Request())

		result, err := coord.Login(ctx.Request().Context(), req.Email, req.Password, req.MFACode, ip, ua, fp)
		if err != nil {
			return response.Error(err)
		}
		return response.JSON(toLoginResponse(result))
	}
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// refreshHandler implements POST /auth/refresh.
func refreshHandler(coord *authcoordinator.Coordinator) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		var req refreshRequest
		if err := binder.JSON()(ctx.Request(), &req); err != nil {
			return badRequest(err)
		}
		if err := validator.ValidateStruct(&req); err != nil {
			return badRequest(err)
		}

		result, err := coord.Refresh(ctx.Request().Context(), req.RefreshToken)
		if err != nil {
			return response.Error(err)
		}
		return response.JSON(toLoginResponse(result))
	}
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// logoutHandler implements POST /auth/logout. It requires a validated
// access token (via Authenticate) plus the refresh token being retired.
func logoutHandler(coord *authcoordinator.Coordinator) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		var req logoutRequest
		if err := binder.JSON()(ctx.Request(), &req); err != nil {
			return badRequest(err)
		}
		if err := validator.ValidateStruct(&req); err != nil {
			return badRequest(err)
		}

		accessToken := bearerToken(ctx.Request().Header.Get("Authorization"))
		if err := coord.Logout(ctx.Request().Context(), accessToken, req.RefreshToken); err != nil {
			return response.Error(err)
		}
		return response.NoContent()
	}
}

type mfaSetupResponse struct {
	Secret          string   `json:"secret"`
	ProvisioningURI string   `json:"provisioning_uri"`
	QRCodePNG       string   `json:"qr_code_png"`
	RecoveryCodes   []string `json:"recovery_codes"`
}

// mfaSetupHandler implements POST /auth/mfa/setup, gated behind Authenticate.
func mfaSetupHandler(coord *authcoordinator.Coordinator, cipher *authcoordinator.SecretCipher) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		user := Caller(ctx)
		if user == nil {
			return response.Error(apierr.New(apierr.CodeInvalidToken, "missing caller"))
		}

		result, err := coord.BeginMFASetup(ctx.Request().Context(), cipher, user, user.Email)
		if err != nil {
			return response.Error(err)
		}
		return response.JSON(mfaSetupResponse{
			Secret:          result.Secret,
			ProvisioningURI: result.ProvisioningURI,
			QRCodePNG:       result.QRCodePNG,
			RecoveryCodes:   result.RecoveryCodes,
		})
	}
}

type mfaVerifyRequest struct {
	Code string `json:"code" validate:"required"`
}

// mfaConfirmHandler implements POST /auth/mfa/confirm, completing enrollment
// started by mfaSetupHandler.
func mfaConfirmHandler(coord *authcoordinator.Coordinator, cipher *authcoordinator.SecretCipher) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		user := Caller(ctx)
		if user == nil {
			return response.Error(apierr.New(apierr.CodeInvalidToken, "missing caller"))
		}

		var req mfaVerifyRequest
		if err := binder.JSON()(ctx.Request(), &req); err != nil {
			return badRequest(err)
		}
		if err := validator.ValidateStruct(&req); err != nil {
			return badRequest(err)
		}

		if err := coord.ConfirmMFASetup(ctx.Request().Context(), cipher, user, req.Code); err != nil {
			return response.Error(err)
		}
		return response.NoContent()
	}
}

// mfaVerifyHandler implements POST /auth/mfa/verify, used to step up an
// already-authenticated session (e.g. before a sensitive admin action).
func mfaVerifyHandler(coord *authcoordinator.Coordinator, cipher *authcoordinator.SecretCipher) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		user := Caller(ctx)
		if user == nil {
			return response.Error(apierr.New(apierr.CodeInvalidToken, "missing caller"))
		}

		var req mfaVerifyRequest
		if err := binder.JSON()(ctx.Request(), &req); err != nil {
			return badRequest(err)
		}
		if err := validator.ValidateStruct(&req); err != nil {
			return badRequest(err)
		}

		if err := coord.VerifyMFA(ctx.Request().Context(), cipher, user, req.Code); err != nil {
			return response.Error(err)
		}
		return response.NoContent()
	}
}
