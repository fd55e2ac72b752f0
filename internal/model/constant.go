package model

// 生成类型
const (
	KindDocx = "docx"
	KindPptx = "pptx"
	KindXlsx = "xlsx"
	KindFile = "file"
)

// 生成状态
const (
	GenerationSucceeded = 1
	GenerationFailed    = -1
)

// 上传文件 meta.data 中的来源标记
const GeneratedByUpload = "upload_file"
