package controllers

import (
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"routemap_api/internal/config"
)

var shareClient = &http.Client{Timeout: 5 * time.Second}

var (
	ogTitleRe = regexp.MustCompile(`(<meta[^>]*property="og:title"[^>]*content=")[^"]*(")`)
	ogDescRe  = regexp.MustCompile(`(<meta[^>]*property="og:description"[^>]*content=")[^"]*(")`)
	ogURLRe   = regexp.MustCompile(`(<meta[^>]*property="og:url"[^>]*content=")[^"]*(")`)
	ogImageRe = regexp.MustCompile(`(<meta[^>]*property="og:image"[^>]*content=")([^"]*)(")`)
)

// ShareHTML fetches the static share template and rewrites its social
// preview metadata for the requested camp/code. The v parameter is a
// cache-bust token appended to the preview image URL.
func ShareHTML(c *gin.Context) {
	if config.StaticBaseURL == "" {
		c.JSON(http.StatusBadGateway, gin.H{"error": "share template is not configured"})
		return
	}

	camp := strings.TrimSpace(c.Query("camp"))
	code := strings.TrimSpace(c.Query("code"))
	v := strings.TrimSpace(c.Query("v"))

	resp, err := shareClient.Get(strings.TrimRight(config.StaticBaseURL, "/") + "/share.html")
	if err != nil {
		logrus.WithError(err).Error("ShareHTML: template fetch failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "share template fetch failed"})
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.JSON(http.StatusBadGateway, gin.H{"error": fmt.Sprintf("share template fetch returned HTTP %d", resp.StatusCode)})
		return
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "share template read failed"})
		return
	}

	html := string(raw)
	title := "Delivery route map"
	desc := "Shared delivery route"
	switch {
	case camp != "" && code != "":
		title = fmt.Sprintf("%s %s - delivery route", camp, code)
		desc = fmt.Sprintf("Route %s in camp %s", code, camp)
	case camp != "":
		title = fmt.Sprintf("%s - delivery routes", camp)
		desc = fmt.Sprintf("Routes of camp %s", camp)
	}

	html = ogTitleRe.ReplaceAllString(html, "${1}"+htmlEscape(title)+"${2}")
	html = ogDescRe.ReplaceAllString(html, "${1}"+htmlEscape(desc)+"${2}")
	html = ogURLRe.ReplaceAllString(html, "${1}"+htmlEscape(shareURL(c, camp, code))+"${2}")
	if v != "" {
		html = ogImageRe.ReplaceAllStringFunc(html, func(m string) string {
			sub := ogImageRe.FindStringSubmatch(m)
			img := sub[2]
			sep := "?"
			if strings.Contains(img, "?") {
				sep = "&"
			}
			return sub[1] + img + sep + "v=" + htmlEscape(v) + sub[3]
		})
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func shareURL(c *gin.Context, camp, code string) string {
	q := make([]string, 0, 2)
	if camp != "" {
		q = append(q, "camp="+camp)
	}
	if code != "" {
		q = append(q, "code="+code)
	}
	u := "https://" + c.Request.Host + "/share.html"
	if len(q) > 0 {
		u += "?" + strings.Join(q, "&")
	}
	return u
}

func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
