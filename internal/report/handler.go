package report

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Gabrielsb1/destalhe/internal/user"
	"github.com/Gabrielsb1/destalhe/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// parseRefDate 解析可选的date查询参数，缺省为当前时刻。
func parseRefDate(c *gin.Context) (time.Time, bool) {
	dateParam := c.Query("date")
	if dateParam == "" {
		return time.Now(), true
	}
	t, err := cal.ParseDayKey(dateParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的日期参数，应为YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}

// GetDashboardHandler 返回管理端看板（管理端）
func GetDashboardHandler(c *gin.Context) {
	ref, ok := parseRefDate(c)
	if !ok {
		return
	}

	dashboard, err := GetDashboard(ref)
	if err != nil {
		if apperror.IsStoreUnavailable(err) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "服务暂时不可用，请稍后重试"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成看板数据失败"})
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// GetProductivitySeries 返回最近若干天的逐日完结数和目标（管理端趋势图）
func GetProductivitySeries(c *gin.Context) {
	ref, ok := parseRefDate(c)
	if !ok {
		return
	}

	days := 7
	if daysParam := c.Query("days"); daysParam != "" {
		parsed, err := strconv.Atoi(daysParam)
		if err != nil || parsed < 1 || parsed > 90 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的days参数，应为1到90之间的整数"})
			return
		}
		days = parsed
	}

	series, err := BuildProductivitySeries(ref, days)
	if err != nil {
		if apperror.IsStoreUnavailable(err) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "服务暂时不可用，请稍后重试"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成趋势数据失败"})
		return
	}
	c.JSON(http.StatusOK, series)
}

// GetMyProgress 返回当前协作者的当日进度
func GetMyProgress(c *gin.Context) {
	actor, ok := user.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未认证"})
		return
	}

	ref, ok := parseRefDate(c)
	if !ok {
		return
	}

	progress, err := MyProgressFor(actor, ref)
	if err != nil {
		if apperror.IsStoreUnavailable(err) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "服务暂时不可用，请稍后重试"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取进度失败"})
		return
	}
	c.JSON(http.StatusOK, progress)
}
