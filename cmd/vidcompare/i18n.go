// Package main provides localization for the vidcompare CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Compare two videos frame by frame": "2つの動画をフレーム単位で比較",
		"Error: %v":                         "エラー: %v",

		// Global flags
		"YAML configuration file":                                 "YAML設定ファイル",
		"Log level (debug, info, warn, error)":                    "ログレベル（debug, info, warn, error）",
		"Log format (console, json)":                              "ログ形式（console, json）",
		"Suppress all log output":                                 "ログ出力をすべて抑制",
		"Path to ffmpeg (falls back to FFMPEG_PATH, then PATH)":   "ffmpegのパス（未指定時はFFMPEG_PATH、次にPATH）",
		"Path to ffprobe (falls back to FFPROBE_PATH, then PATH)": "ffprobeのパス（未指定時はFFPROBE_PATH、次にPATH）",

		// View flags
		"Panel width in pixels":                   "パネルの幅（ピクセル）",
		"Panel height in pixels":                  "パネルの高さ（ピクセル）",
		"View mode (side, overlay)":               "表示モード（side, overlay）",
		"Overlay divider position (0 to 1)":       "オーバーレイ境界線の位置（0から1）",
		"Restart from the first frame at the end": "最後まで再生したら最初のフレームから再開",

		// Info command
		"Print video metadata":          "動画のメタデータを表示",
		"at least one file is required": "ファイルを1つ以上指定してください",
		"Frames: %d | Codec: %s":        "フレーム数: %d | コーデック: %s",

		// Snapshot command
		"Write one comparison frame as PNG":         "比較フレームを1枚PNGで書き出す",
		"Frame index (clamped to the shared range)": "フレーム番号（共通範囲に丸められます）",
		"Output PNG file path (required)":           "出力PNGファイルパス（必須）",
		"exactly two videos are required":           "動画をちょうど2つ指定してください",
		"Snapshot of frame %d saved to %s":          "フレーム %d のスナップショットを %s に保存しました",

		// Play command
		"Play both videos in real time and write every displayed frame": "2つの動画を実時間で再生し、表示したフレームをすべて書き出す",
		"Directory for frame-NNNNNN.png files":                          "frame-NNNNNN.png を書き出すディレクトリ",
		"First frame":                                                   "開始フレーム",
		"Pause at this frame (-1 plays to the end)":                     "このフレームで一時停止（-1で最後まで再生）",
		"--loop needs --to, otherwise playback never ends":              "--loop には --to が必要です（指定しないと再生が終わりません）",
		"Wrote %d frames to %s":                                         "%d フレームを %s に書き出しました",

		// Session command
		"Interactive comparison driven by commands on stdin":     "標準入力のコマンドで操作する対話的な比較",
		"Directory for frame-NNNNNN.png files (none by default)": "frame-NNNNNN.png を書き出すディレクトリ（デフォルトは書き出さない）",
		"Do not reopen the videos from the previous session":     "前回のセッションの動画を開き直さない",
		"at most two videos can be given":                        "動画は2つまで指定できます",

		// Session help
		"Commands: load <1|2> <path>, play, pause, toggle, seek <n>, step [n], resize <1|2> <w> <h>, loop, mode, divider <f>, status, quit": "コマンド: load <1|2> <パス>, play, pause, toggle, seek <n>, step [n], resize <1|2> <幅> <高さ>, loop, mode, divider <f>, status, quit",

		// Setup
		"ffprobe unavailable, only MP4 metadata can be read: %v": "ffprobeが使えないため、MP4のメタデータのみ読み取れます: %v",

		// Version command
		"Show version information": "バージョン情報を表示",
		"vidcompare version %s":    "vidcompare バージョン %s",
	})
}
