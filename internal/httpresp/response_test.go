package httpresp

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func pagingFor(target string) Paging {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return ParsePaging(c, 20)
}

func TestParsePaging(t *testing.T) {
	assert.Equal(t, Paging{Page: 1, PageSize: 20}, pagingFor("/x"))
	assert.Equal(t, Paging{Page: 3, PageSize: 5}, pagingFor("/x?page=3&page_size=5"))
	assert.Equal(t, Paging{Page: 1, PageSize: 20}, pagingFor("/x?page=-2&page_size=abc"))
	assert.Equal(t, Paging{Page: 1, PageSize: MaxPageSize}, pagingFor("/x?page_size=5000"))
}

func TestPaging_Offset(t *testing.T) {
	assert.Equal(t, 0, Paging{Page: 1, PageSize: 10}.Offset())
	assert.Equal(t, 20, Paging{Page: 3, PageSize: 10}.Offset())
}
