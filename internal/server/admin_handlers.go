package server

import (
	"encoding/json"
	"fmt"
	"html"
	"reflect"
	"strings"
	"time"

	"ripple/internal/database"
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// The admin surface is generated from the model registry: every entity in
// database.AdminTables gets the same list/create/update/delete treatment,
// with columns derived from the struct fields.

// AdminIndex handles GET /admin
func (s *Server) AdminIndex(c *fiber.Ctx) error {
	tables := database.AdminTables()

	if !wantsHTML(c) {
		names := make([]string, len(tables))
		for i, t := range tables {
			names[i] = t.Name
		}
		return c.JSON(fiber.Map{"tables": names})
	}

	var b strings.Builder
	b.WriteString("<!doctype html><html><head><title>Admin</title></head><body>")
	b.WriteString("<h1>Admin</h1><ul>")
	for _, t := range tables {
		fmt.Fprintf(&b, `<li><a href="/admin/%s">%s</a></li>`, t.Name, t.Name)
	}
	b.WriteString("</ul></body></html>")
	return sendHTML(c, b.String())
}

// AdminListRows handles GET /admin/:table
func (s *Server) AdminListRows(c *fiber.Ctx) error {
	table, ok := database.LookupAdminTable(c.Params("table"))
	if !ok {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Table", 0))
	}
	page := parsePagination(c, 50)

	rows := table.NewSlice()
	if err := s.db.WithContext(c.Context()).
		Limit(page.Limit).Offset(page.Offset).
		Find(rows).Error; err != nil {
		return respondServiceError(c, models.NewInternalError(err))
	}

	if !wantsHTML(c) {
		return c.JSON(rows)
	}
	return sendHTML(c, renderAdminTable(table.Name, rows))
}

// AdminCreateRow handles POST /admin/:table
func (s *Server) AdminCreateRow(c *fiber.Ctx) error {
	table, ok := database.LookupAdminTable(c.Params("table"))
	if !ok {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Table", 0))
	}

	row := table.New()
	if err := json.Unmarshal(c.Body(), row); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.db.WithContext(c.Context()).Create(row).Error; err != nil {
		return respondServiceError(c, models.NewInternalError(err))
	}
	return c.Status(fiber.StatusCreated).JSON(row)
}

// AdminUpdateRow handles PUT /admin/:table/:id
func (s *Server) AdminUpdateRow(c *fiber.Ctx) error {
	table, ok := database.LookupAdminTable(c.Params("table"))
	if !ok {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Table", 0))
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	row := table.New()
	if err := s.db.WithContext(c.Context()).First(row, id).Error; err != nil {
		return respondServiceError(c, models.NewNotFoundError(table.Name, id))
	}
	if err := json.Unmarshal(c.Body(), row); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.db.WithContext(c.Context()).Save(row).Error; err != nil {
		return respondServiceError(c, models.NewInternalError(err))
	}
	return c.JSON(row)
}

// AdminDeleteRow handles DELETE /admin/:table/:id
func (s *Server) AdminDeleteRow(c *fiber.Ctx) error {
	table, ok := database.LookupAdminTable(c.Params("table"))
	if !ok {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Table", 0))
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	res := s.db.WithContext(c.Context()).Delete(table.New(), id)
	if res.Error != nil {
		return respondServiceError(c, models.NewInternalError(res.Error))
	}
	if res.RowsAffected == 0 {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError(table.Name, id))
	}
	return c.JSON(fiber.Map{"ok": true, "message": "Row deleted"})
}

func wantsHTML(c *fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMETextHTML)
}

func sendHTML(c *fiber.Ctx, body string) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(body)
}

// renderAdminTable builds a plain HTML table from a *[]T of registry rows,
// columns taken from the struct fields via reflection.
func renderAdminTable(name string, rows interface{}) string {
	slice := reflect.ValueOf(rows).Elem()

	var b strings.Builder
	fmt.Fprintf(&b, "<!doctype html><html><head><title>%s</title></head><body>", name)
	fmt.Fprintf(&b, `<h1>%s</h1><p><a href="/admin">back</a></p><table border="1"><tr>`, name)

	var elemType reflect.Type
	if slice.Len() > 0 {
		elemType = slice.Index(0).Type()
	} else {
		elemType = slice.Type().Elem()
	}
	for i := 0; i < elemType.NumField(); i++ {
		fmt.Fprintf(&b, "<th>%s</th>", elemType.Field(i).Name)
	}
	b.WriteString("</tr>")

	for i := 0; i < slice.Len(); i++ {
		b.WriteString("<tr>")
		row := slice.Index(i)
		for j := 0; j < row.NumField(); j++ {
			b.WriteString("<td>")
			b.WriteString(html.EscapeString(formatCell(row.Field(j))))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table></body></html>")
	return b.String()
}

func formatCell(v reflect.Value) string {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	if t, ok := v.Interface().(time.Time); ok {
		return t.Format(time.RFC3339)
	}
	return fmt.Sprintf("%v", v.Interface())
}
