package httpapi

import (
	"errors"

	"github.com/google/uuid"
	"github.com/juan-009/authguard/core/binder"
	"github.com/juan-009/authguard/core/handler"
	"github.com/juan-009/authguard/core/response"
	"github.com/juan-009/authguard/core/router"
	"github.com/juan-009/authguard/core/validator"
	"github.com/juan-009/authguard/internal/admincoordinator"
	"github.com/juan-009/authguard/internal/domain"
	"github.com/juan-009/authguard/internal/repository"
	"github.com/juan-009/authguard/pkg/apierr"
)

// idParam parses the {id} path segment as a UUID, returning a VALIDATION
// apierr on failure.
func idParam(ctx *router.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return uuid.Nil, apierr.Wrap(apierr.CodeValidation, "invalid id path parameter", err)
	}
	return id, nil
}

func mapNotFound(err error, message string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apierr.New(apierr.CodeNotFound, message)
	}
	return apierr.Wrap(apierr.CodeInfrastructure, message, err)
}

// --- users -----------------------------------------------------------

type createUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=12"`
}

func createUserHandler(coord *admincoordinator.Coordinator) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		var req createUserRequest
		if err := binder.JSON()(ctx.Request(), &req); err != nil {
			return badRequest(err)
		}
		if err := validator.ValidateStruct(&req); err != nil {
			return badRequest(err)
		}

		user, err := coord.CreateUser(ctx.Request().Context(), Caller(ctx), req.Email, req.Password)
		if err != nil {
			return response.Error(err)
		}
		return response.JSONWithStatus(user, 201)
	}
}

func listUsersHandler(users repository.UserRepository) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		page, err := users.List(ctx.Request().Context(), repository.Pagination{}.Normalize())
		if err != nil {
			return response.Error(apierr.Wrap(apierr.CodeInfrastructure, "list users", err))
		}
		return response.JSON(page)
	}
}

type updateUserEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func updateUserEmailHandler(coord *admincoordinator.Coordinator, users repository.UserRepository) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		id, err := idParam(ctx)
		if err != nil {
			return response.Error(err)
		}
		target, err := users.FindByID(ctx.Request().Context(), id)
		if err != nil {
			return response.Error(mapNotFound(err, "user not found"))
		}

		var req updateUserEmailRequest
		if err := binder.JSON()(ctx.Request(), &req); err != nil {
			return badRequest(err)
		}
		if err := validator.ValidateStruct(&req); err != nil {
			return badRequest(err)
		}

		if err := coord.UpdateUserEmail(ctx.Request().Context(), Caller(ctx), target, req.Email); err != nil {
			return response.Error(err)
		}
		return response.JSON(target)
	}
}

func deactivateUserHandler(coord *admincoordinator.Coordinator, users repository.UserRepository) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		id, err := idParam(ctx)
		if err != nil {
			return response.Error(err)
		}
		target, err := users.FindByID(ctx.Request().Context(), id)
		if err != nil {
			return response.Error(mapNotFound(err, "user not found"))
		}

		if err := coord.DeactivateUser(ctx.Request().Context(), Caller(ctx), target); err != nil {
			return response.Error(err)
		}
		return response.NoContent()
	}
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=12"`
}

func changeOwnPasswordHandler(coord *admincoordinator.Coordinator) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		var req changePasswordRequest
		if err := binder.JSON()(ctx.Request(), &req); err != nil {
			return badRequest(err)
		}
		if err := validator.ValidateStruct(&req); err != nil {
			return badRequest(err)
		}

		if err := coord.ChangeOwnPassword(ctx.Request().Context(), Caller(ctx), req.OldPassword, req.NewPassword); err != nil {
			return response.Error(err)
		}
		return response.NoContent()
	}
}

type assignRoleRequest struct {
	RoleID uuid.UUID `json:"role_id" validate:"required"`
}

func assignRoleHandler(coord *admincoordinator.Coordinator, users repository.UserRepository) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		id, err := idParam(ctx)
		if err != nil {
			return response.Error(err)
		}
		target, err := users.FindByID(ctx.Request().Context(), id)
		if err != nil {
			return response.Error(mapNotFound(err, "user not found"))
		}

		var req assignRoleRequest
		if err := binder.JSON()(ctx.Request(), &req); err != nil {
			return badRequest(err)
		}
		if err := validator.ValidateStruct(&req); err != nil {
			return badRequest(err)
		}

		if err := coord.AssignRole(ctx.Request().Context(), Caller(ctx), target, req.RoleID); err != nil {
			return response.Error(err)
		}
		return response.NoContent()
	}
}

func revokeRoleHandler(coord *admincoordinator.Coordinator, users repository.UserRepository) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		id, err := idParam(ctx)
		if err != nil {
			return response.Error(err)
		}
		target, err := users.FindByID(ctx.Request().Context(), id)
		if err != nil {
			return response.Error(mapNotFound(err, "user not found"))
		}

		roleID, err := uuid.Parse(ctx.Param("role_id"))
		if err != nil {
			return response.Error(apierr.Wrap(apierr.CodeValidation, "invalid role_id path parameter", err))
		}

		if err := coord.RevokeRole(ctx.Request().Context(), Caller(ctx), target, roleID); err != nil {
			return response.Error(err)
		}
		return response.NoContent()
	}
}

// --- roles -------------------------------------------------------------

type createRoleRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func createRoleHandler(coord *admincoordinator.Coordinator) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		var req createRoleRequest
		if err := binder.JSON()(ctx.Request(), &req); err != nil {
			return badRequest(err)
		}
		if err := validator.ValidateStruct(&req); err != nil {
			return badRequest(err)
		}

		role, err := coord.CreateRole(ctx.Request().Context(), Caller(ctx), req.Name, req.Description)
		if err != nil {
			return response.Error(err)
		}
		return response.JSONWithStatus(role, 201)
	}
}

func listRolesHandler(roles repository.RoleRepository) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		page, err := roles.List(ctx.Request().Context(), repository.Pagination{}.Normalize())
		if err != nil {
			return response.Error(apierr.Wrap(apierr.CodeInfrastructure, "list roles", err))
		}
		return response.JSON(page)
	}
}

type updateRoleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func updateRoleHandler(coord *admincoordinator.Coordinator, roles repository.RoleRepository) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		id, err := idParam(ctx)
		if err != nil {
			return response.Error(err)
		}
		role, err := roles.FindByID(ctx.Request().Context(), id)
		if err != nil {
			return response.Error(mapNotFound(err, "role not found"))
		}

		var req updateRoleRequest
		if err := binder.JSON()(ctx.Request(), &req); err != nil {
			return badRequest(err)
		}

		if err := coord.UpdateRoleDetails(ctx.Request().Context(), Caller(ctx), role, req.Name, req.Description); err != nil {
			return response.Error(err)
		}
		return response.JSON(role)
	}
}

func deleteRoleHandler(coord *admincoordinator.Coordinator, roles repository.RoleRepository) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		id, err := idParam(ctx)
		if err != nil {
			return response.Error(err)
		}
		role, err := roles.FindByID(ctx.Request().Context(), id)
		if err != nil {
			return response.Error(mapNotFound(err, "role not found"))
		}

		if err := coord.DeleteRole(ctx.Request().Context(), Caller(ctx), role); err != nil {
			return response.Error(err)
		}
		return response.NoContent()
	}
}

type setParentRoleRequest struct {
	ParentID *uuid.UUID `json:"parent_id"`
}

func setParentRoleHandler(coord *admincoordinator.Coordinator, roles repository.RoleRepository) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		id, err := idParam(ctx)
		if err != nil {
			return response.Error(err)
		}
		role, err := roles.FindByID(ctx.Request().Context(), id)
		if err != nil {
			return response.Error(mapNotFound(err, "role not found"))
		}

		var req setParentRoleRequest
		if err := binder.JSON()(ctx.Request(), &req); err != nil {
			return badRequest(err)
		}

		if err := coord.SetParentRole(ctx.Request().Context(), Caller(ctx), role, req.ParentID); err != nil {
			return response.Error(err)
		}
		return response.NoContent()
	}
}

type attachPermissionRequest struct {
	PermissionID uuid.UUID `json:"permission_id" validate:"required"`
}

func attachPermissionHandler(coord *admincoordinator.Coordinator, roles repository.RoleRepository) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		id, err := idParam(ctx)
		if err != nil {
			return response.Error(err)
		}
		role, err := roles.FindByID(ctx.Request().Context(), id)
		if err != nil {
			return response.Error(mapNotFound(err, "role not found"))
		}

		var req attachPermissionRequest
		if err := binder.JSON()(ctx.Request(), &req); err != nil {
			return badRequest(err)
		}
		if err := validator.ValidateStruct(&req); err != nil {
			return badRequest(err)
		}

		if err := coord.AttachPermission(ctx.Request().Context(), Caller(ctx), role, req.PermissionID); err != nil {
			return response.Error(err)
		}
		return response.NoContent()
	}
}

func detachPermissionHandler(coord *admincoordinator.Coordinator, roles repository.RoleRepository) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		id, err := idParam(ctx)
		if err != nil {
			return response.Error(err)
		}
		role, err := roles.FindByID(ctx.Request().Context(), id)
		if err != nil {
			return response.Error(mapNotFound(err, "role not found"))
		}

		permissionID, err := uuid.Parse(ctx.Param("permission_id"))
		if err != nil {
			return response.Error(apierr.Wrap(apierr.CodeValidation, "invalid permission_id path parameter", err))
		}

		if err := coord.DetachPermission(ctx.Request().Context(), Caller(ctx), role, permissionID); err != nil {
			return response.Error(err)
		}
		return response.NoContent()
	}
}

// --- permissions ---------------------------------------------------------

type createPermissionRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func createPermissionHandler(coord *admincoordinator.Coordinator) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		var req createPermissionRequest
		if err := binder.JSON()(ctx.Request(), &req); err != nil {
			return badRequest(err)
		}
		if err := validator.ValidateStruct(&req); err != nil {
			return badRequest(err)
		}

		perm, err := coord.CreatePermission(ctx.Request().Context(), Caller(ctx), req.Name, req.Description)
		if err != nil {
			return response.Error(err)
		}
		return response.JSONWithStatus(perm, 201)
	}
}

func listPermissionsHandler(permissions repository.PermissionRepository) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		page, err := permissions.List(ctx.Request().Context(), repository.Pagination{}.Normalize())
		if err != nil {
			return response.Error(apierr.Wrap(apierr.CodeInfrastructure, "list permissions", err))
		}
		return response.JSON(page)
	}
}

type updatePermissionRequest struct {
	Description string `json:"description"`
}

func updatePermissionHandler(coord *admincoordinator.Coordinator, permissions repository.PermissionRepository) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		id, err := idParam(ctx)
		if err != nil {
			return response.Error(err)
		}
		perm, err := permissions.FindByID(ctx.Request().Context(), id)
		if err != nil {
			return response.Error(mapNotFound(err, "permission not found"))
		}

		var req updatePermissionRequest
		if err := binder.JSON()(ctx.Request(), &req); err != nil {
			return badRequest(err)
		}

		if err := coord.UpdatePermission(ctx.Request().Context(), Caller(ctx), perm, req.Description); err != nil {
			return response.Error(err)
		}
		return response.JSON(perm)
	}
}

func deletePermissionHandler(coord *admincoordinator.Coordinator, permissions repository.PermissionRepository) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		id, err := idParam(ctx)
		if err != nil {
			return response.Error(err)
		}
		perm, err := permissions.FindByID(ctx.Request().Context(), id)
		if err != nil {
			return response.Error(mapNotFound(err, "permission not found"))
		}

		if err := coord.DeletePermission(ctx.Request().Context(), Caller(ctx), perm); err != nil {
			return response.Error(err)
		}
		return response.NoContent()
	}
}
