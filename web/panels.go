package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/shule/core/school"
)

// panelDef describes how one entity collection renders: its table columns,
// row cells and form fields. The three defs live next to their handlers in
// students.go, teachers.go and courses.go.
type panelDef[T school.Record] struct {
	resource string
	title    string
	singular string
	columns  []string
	cells    func(T) []string
	fields   func(T) []fieldView
	label    func(T) string
}

// recordInput is the create/update form of an entity.
type recordInput[T school.Record] interface {
	Validate() error
	Record(id int) T
}

// formState carries submitted values and their validation errors into a
// dashboard re-render. A zero editID targets the add form.
type formState struct {
	section string
	errors  map[string]string
	values  []fieldView
	editID  int
}

// buildPanelView applies the request's q/page/edit parameters to the panel
// and snapshots it for the template.
func buildPanelView[T school.Record](ctx echo.Context, p *school.Panel[T], def panelDef[T], fs formState) *panelView {
	p.SetSearch(ctx.QueryParam("q"))
	if page, err := strconv.Atoi(ctx.QueryParam("page")); err == nil {
		p.SetPage(page)
	}

	editID := fs.editID
	if editID == 0 {
		editID, _ = strconv.Atoi(ctx.QueryParam("edit"))
	}

	items, info := p.Visible()
	rows := make([]rowView, 0, len(items))
	for _, it := range items {
		row := rowView{ID: it.RecordID(), Cells: def.cells(it)}
		if row.ID == editID {
			if fs.editID == row.ID {
				row.Fields = fs.values
				row.Errors = fs.errors
			} else {
				row.Fields = def.fields(it)
			}
		}
		rows = append(rows, row)
	}

	var zero T
	form := def.fields(zero)
	var formErrs map[string]string
	if fs.editID == 0 && fs.values != nil {
		form = fs.values
		formErrs = fs.errors
	}

	pages := make([]int, info.Pages)
	for i := range pages {
		pages[i] = i + 1
	}

	return &panelView{
		Resource:   def.resource,
		Title:      def.title,
		Singular:   def.singular,
		Columns:    def.columns,
		Rows:       rows,
		Form:       form,
		FormErrors: formErrs,
		Query:      p.Search(),
		Page:       info.Page,
		PageNums:   pages,
		Total:      info.Total,
		Banner:     p.Banner(),
		Busy:       p.Busy(),
	}
}

func createRecord[T school.Record](s *server, ctx echo.Context, p *school.Panel[T], in recordInput[T], def panelDef[T]) error {
	if err := ctx.Bind(in); err != nil {
		return err
	}
	if err := in.Validate(); err != nil {
		flds := fieldErrors(err)
		if flds == nil {
			return err
		}
		fs := formState{section: def.resource, errors: flds, values: def.fields(in.Record(0))}
		return s.renderAdminDashboard(ctx, http.StatusBadRequest, fs)
	}

	// API failures land on the panel banner; a busy panel drops the
	// duplicate submit
	_, _ = p.Create(ctx.Request().Context(), in.Record(0))
	return redirectSection(ctx, def.resource)
}

func updateRecord[T school.Record](s *server, ctx echo.Context, p *school.Panel[T], in recordInput[T], def panelDef[T]) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = ctx.Bind(in); err != nil {
		return err
	}
	if err = in.Validate(); err != nil {
		flds := fieldErrors(err)
		if flds == nil {
			return err
		}
		fs := formState{section: def.resource, errors: flds, values: def.fields(in.Record(id)), editID: id}
		return s.renderAdminDashboard(ctx, http.StatusBadRequest, fs)
	}

	_ = p.Update(ctx.Request().Context(), in.Record(id))
	return redirectSection(ctx, def.resource)
}

func confirmDelete[T school.Record](s *server, ctx echo.Context, p *school.Panel[T], def panelDef[T]) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	rec, ok := p.Get(id)
	if !ok { // stale link
		return redirectSection(ctx, def.resource)
	}
	view := confirmView{
		AppName:  s.deps.Conf.AppName,
		Singular: def.singular,
		Detail:   def.label(rec),
		Action:   fmt.Sprintf("/admin/%s/%d/delete", def.resource, id),
		Cancel:   "/admin/dashboard?section=" + def.resource,
	}
	return ctx.Render(http.StatusOK, "confirm_delete.html", view)
}

func deleteRecord[T school.Record](ctx echo.Context, p *school.Panel[T], resource string) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	_ = p.Remove(ctx.Request().Context(), id)
	return redirectSection(ctx, resource)
}

func pathID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		return 0, errHTTPNotFound
	}
	return id, nil
}

func redirectSection(ctx echo.Context, resource string) error {
	return ctx.Redirect(http.StatusSeeOther, "/admin/dashboard?section="+resource)
}
