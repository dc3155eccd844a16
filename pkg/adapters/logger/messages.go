package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Loading (controller, source components)
		"Loaded %s into slot %d (%d frames, %.2f fps)":              "%s をスロット %d に読み込みました (%d フレーム, %.2f fps)",
		"Opened %s: %d frames, %.2f fps, %dx%d %s":                  "%s を開きました: %d フレーム, %.2f fps, %dx%d %s",
		"Shared range is 0..%d":                                     "共通範囲は 0..%d です",
		"Probe of %s with %T failed: %v":                            "%s の %T による解析に失敗しました: %v",
		"Frame rates differ (%.2f vs %.2f); timing follows video 1": "フレームレートが異なります (%.2f と %.2f)。再生タイミングは動画1に従います",

		// Playback
		"Playback started at frame %d (tick %v)": "フレーム %d から再生を開始しました (間隔 %v)",
		"Playback paused at frame %d":            "フレーム %d で一時停止しました",
		"Playback reached frame %d and stopped":  "フレーム %d に到達したため停止しました",
		"Playback interrupted by seek":           "シークにより再生を中断しました",
		"Reached stop frame %d":                  "停止フレーム %d に到達しました",
		"Loop %v":                                "ループ %v",
		"Switched to %s mode":                    "%s モードに切り替えました",

		// Session
		"Restoring %s into slot %d":            "%s をスロット %d に復元しています",
		"Skipping missing remembered video %s": "見つからない前回の動画 %s をスキップします",
		"Command %q failed: %v":                "コマンド %q が失敗しました: %v",
		"Command failed: %v":                   "コマンドが失敗しました: %v",

		// Warnings and errors
		"Failed to load %s: %v":               "%s の読み込みに失敗しました: %v",
		"Failed to release %s: %v":            "%s の解放に失敗しました: %v",
		"Failed to release videos: %v":        "動画の解放に失敗しました: %v",
		"Failed to decode frame %d of %s: %v": "%[2]s のフレーム %[1]d のデコードに失敗しました: %[3]v",
		"Failed to update display: %v":        "表示の更新に失敗しました: %v",
		"Failed to read preferences: %v":      "設定の読み込みに失敗しました: %v",
		"Failed to save preferences: %v":      "設定の保存に失敗しました: %v",
	})
}
