package texio

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/ftrvxmtrx/tga"
)

const (
	tgaHeaderLen = 18
	// maxTGASide 单边上限，图集最大为 8192
	maxTGASide = 16384
)

// ErrTGA 无法解码的 TGA 文件
var ErrTGA = errors.New("tga")

// DecodeTGA 先检查数据长度是否足以容纳头部声明的尺寸，再交给 tga.Decode 解码
func DecodeTGA(data []byte) (image.Image, error) {
	if err := checkTGA(data); err != nil {
		return nil, err
	}
	img, err := tga.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTGA, err)
	}
	return img, nil
}

// checkTGA 按数据长度校验头部：未压缩图像需要全部像素数据，RLE 每个包最多 128 个像素
func checkTGA(data []byte) error {
	if len(data) < tgaHeaderLen {
		return fmt.Errorf("%w: header truncated", ErrTGA)
	}
	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	mapLength := int(data[5]) | int(data[6])<<8
	mapEntryBits := int(data[7])
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bytesPP := (int(data[16]) + 7) / 8

	if width == 0 || height == 0 {
		return fmt.Errorf("%w: empty image", ErrTGA)
	}
	if width > maxTGASide || height > maxTGASide {
		return fmt.Errorf("%w: %dx%d exceeds %d", ErrTGA, width, height, maxTGASide)
	}
	if bytesPP == 0 {
		return fmt.Errorf("%w: zero bit depth", ErrTGA)
	}

	payload := len(data) - tgaHeaderLen - idLength
	if colorMapType == 1 {
		payload -= mapLength * ((mapEntryBits + 7) / 8)
	}
	pixels := width * height
	var need int
	switch imageType {
	case 1, 2, 3:
		need = pixels * bytesPP
	case 9, 10, 11:
		need = (pixels + 127) / 128 * (1 + bytesPP)
	default:
		return fmt.Errorf("%w: unsupported image type %d", ErrTGA, imageType)
	}
	if payload < need {
		return fmt.Errorf("%w: pixel data truncated (%d bytes for %dx%d)", ErrTGA, max(payload, 0), width, height)
	}
	return nil
}
