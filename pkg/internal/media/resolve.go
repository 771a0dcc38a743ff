package media

import "strings"

// ResolveURL 将存储路径归一化为可公开访问的 URL.
//
// 历史数据的目录布局不统一，这里按序应用一组启发式规则，命中第一条即返回：
//  1. 路径包含 "/media/" 标记：取第一次出现之后的部分，拼为 base + "/media/" + rest
//  2. 路径包含 "/uploads/" 标记：保留标记本身，拼为 base + "/" + 从标记起的部分
//  3. 无标记：取最后两个路径段，拼为 base + "/media/" + 两段
//
// 空路径返回空串，调用方应视为"无媒体可展示"而非错误.
// 这是尽力而为的启发式，不保证对任意输入都正确.
func ResolveURL(storedPath, mediaBaseURL string) string {
	if storedPath == "" {
		return ""
	}

	base := strings.TrimRight(mediaBaseURL, "/")

	// 相对路径补上前导斜杠，让 "uploads/..." 这类对象键也能命中标记规则
	p := storedPath
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	if idx := strings.Index(p, "/media/"); idx >= 0 {
		rest := p[idx+len("/media/"):]
		return base + "/media/" + rest
	}

	if idx := strings.Index(p, "/uploads/"); idx >= 0 {
		// 保留 uploads 标记，去掉前导斜杠
		return base + "/" + p[idx+1:]
	}

	segs := strings.Split(storedPath, "/")
	if len(segs) >= 2 {
		return base + "/media/" + segs[len(segs)-2] + "/" + segs[len(segs)-1]
	}

	return base + "/media/" + storedPath
}
