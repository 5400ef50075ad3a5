package mail

import (
	"fmt"
	"html"
)

// RenderHTML 평문 본문을 단순한 HTML 메일로 감쌉니다
func RenderHTML(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8" /><title>%s</title></head>
<body style="margin:0;padding:24px;font-family:Arial,sans-serif;background-color:#f7f9fc;">
	<table align="center" width="600" style="background-color:#ffffff;border-radius:8px;padding:32px;">
		<tr><td style="font-size:16px;color:#333333;">%s</td></tr>
	</table>
</body>
</html>`, html.EscapeString(title), html.EscapeString(body))
}
