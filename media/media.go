package media

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/BaSui01/mediaflow/types"
)

// DefaultImageMimeType 是图片槽位在未声明 MIME 类型时的回退值。
const DefaultImageMimeType = "image/png"

// Encoded 是可直接进入出站请求的媒体载荷：base64 编码的字节加上描述它们的
// MIME 类型。每个请求独立构建，从不持久化。
type Encoded struct {
	Bytes    string `json:"bytes"`
	MimeType string `json:"mimeType"`
}

// FromReader 完整读取 r 并进行 base64 编码。mimeType 取自流声明的内容类型。
// 读取中途失败时返回错误，绝不产出截断的媒体对象。
func FromReader(r io.Reader, mimeType string) (*Encoded, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, types.NewError(types.ErrUpstreamError, "failed to read media stream").WithCause(err)
	}
	return &Encoded{
		Bytes:    base64.StdEncoding.EncodeToString(data),
		MimeType: mimeType,
	}, nil
}

// FromFileHeader 打开并完整读取一个 multipart 文件。MIME 类型来自该分部声明的
// Content-Type 头，而非任何用户文本字段，避免字节与声明类型不一致。
func FromFileHeader(fh *multipart.FileHeader) (*Encoded, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, types.NewError(types.ErrUpstreamError,
			fmt.Sprintf("failed to open uploaded file %q", fh.Filename)).WithCause(err)
	}
	defer f.Close()

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = DefaultImageMimeType
	}
	return FromReader(f, mimeType)
}

// FromBase64 规范化 base64 文本输入。如果文本带有 data-URL 前缀，剥离到
// 第一个逗号（含）为止，其后的载荷原样使用。mimeType 为空时使用 fallback。
func FromBase64(data, mimeType, fallbackMimeType string) *Encoded {
	if idx := strings.Index(data, ","); idx >= 0 {
		data = data[idx+1:]
	}
	if mimeType == "" {
		mimeType = fallbackMimeType
	}
	return &Encoded{Bytes: data, MimeType: mimeType}
}

// ResolveImageSlot 为一个逻辑图片槽位挑选输入源。文件上传优先于 base64 文本，
// 只读取胜出的那一个。两种来源都缺失时返回 nil（槽位不出现在出站请求中）。
func ResolveImageSlot(fh *multipart.FileHeader, base64Text, mimeType string) (*Encoded, error) {
	if fh != nil {
		return FromFileHeader(fh)
	}
	if base64Text != "" {
		return FromBase64(base64Text, mimeType, DefaultImageMimeType), nil
	}
	return nil, nil
}

// FromFileHeaders 并发读取一个有序的文件序列。返回切片的顺序与输入顺序一致，
// 与各文件读取完成的先后无关。任何一个文件失败则整体失败。
func FromFileHeaders(fhs []*multipart.FileHeader) ([]*Encoded, error) {
	if len(fhs) == 0 {
		return nil, nil
	}

	out := make([]*Encoded, len(fhs))
	var g errgroup.Group
	for i, fh := range fhs {
		g.Go(func() error {
			enc, err := FromFileHeader(fh)
			if err != nil {
				return err
			}
			out[i] = enc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
