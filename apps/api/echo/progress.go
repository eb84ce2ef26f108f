package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/maendeleo/backend/core/course"
	"github.com/maendeleo/backend/core/progress"
)

type progressApi struct {
	svc progress.Service
}

func registerProgressAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc progress.Service) {
	api := progressApi{svc: svc}

	pg := g.Group("/progress", jwt, portalMiddleware())
	pg.GET("/dashboard", api.dashboard)
	pg.GET("/my-modules", api.myModules)

	// detail endpoints
	mg := pg.Group("/modules/:id")
	mg.GET("", api.moduleDetail)
	mg.GET("/overview", api.moduleOverview)
}

func (api *progressApi) moduleOverview(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	res, err := api.svc.GetModuleOverview(ctx.Request().Context(), ctx.Param("id"), claims.Subject, claims.role(), queryScope(ctx))
	if err != nil {
		return trapSvcErr(err, "getting module overview")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *progressApi) moduleDetail(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	res, err := api.svc.GetModuleDetail(ctx.Request().Context(), ctx.Param("id"), claims.Subject, claims.role(), queryScope(ctx))
	if err != nil {
		return trapSvcErr(err, "getting module detail")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *progressApi) dashboard(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	res, err := api.svc.GetDashboard(ctx.Request().Context(), claims.Subject, claims.role(), queryScope(ctx))
	if err != nil {
		return trapSvcErr(err, "getting dashboard")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *progressApi) myModules(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	filter := progress.QueryFilter{
		Status:           progress.Status(ctx.QueryParam("status")),
		Search:           ctx.QueryParam("search"),
		CourseOfferingID: queryScope(ctx).CourseOfferingID,
	}
	res, err := api.svc.GetMyModules(ctx.Request().Context(), claims.Subject, claims.role(), filter)
	if err != nil {
		return trapSvcErr(err, "getting module list")
	}
	return ctx.JSON(http.StatusOK, res)
}

func queryScope(ctx echo.Context) progress.Scope {
	var s progress.Scope
	if v := ctx.QueryParam("offering_id"); v != "" {
		s.CourseOfferingID = null.StringFrom(v)
	}
	return s
}

// trapSvcErr maps known engine errors to their HTTP counterparts.
func trapSvcErr(err error, msg string) error {
	switch errors.Cause(err) {
	case course.ErrNotFound:
		return errHttpNotFound
	case progress.ErrInvalidScope:
		return errInvalidScope
	}
	return errors.Wrap(err, msg)
}
