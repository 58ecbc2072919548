package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pro-master/backend/internal/httperr"
)

// paramID reads a positive numeric path parameter. Anything else is a 404:
// no resource can live at that path.
func paramID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.NotFound(c, "not_found", "Not found.")
		return 0, false
	}
	return uint(v), true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.InvalidRequest(c, err)
		return false
	}
	return true
}

// queryList accepts both ?k=a&k=b and ?k=a,b.
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, v := range c.QueryArray(key) {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func queryBool(c *gin.Context, key string) *bool {
	v, err := strconv.ParseBool(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return nil
	}
	return &v
}

// likePrefix builds a lower-cased LIKE pattern matching values that start
// with prefix. Pair it with ESCAPE '\'.
func likePrefix(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return strings.ToLower(r.Replace(prefix)) + "%"
}
