package service

import (
	"math"

	"survey_backend/internal/util"
)

// WeightSum 计算维度权重之和
func WeightSum(weights []float64) float64 {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	return total
}

// ValidateProjectWeights 校验单个项目的维度权重
// 每个权重在 [0,1] 内，总和与 1 的误差不超过 util.WeightTolerance
// 没有维度的项目总和为 0，校验失败；project 用于错误信息
func ValidateProjectWeights(project string, weights []float64) error {
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 || w > 1 {
			return util.Validation("project %q: dimension %d weight %v must be between 0 and 1", project, i+1, w)
		}
	}

	total := WeightSum(weights)
	if math.Abs(total-1) > util.WeightTolerance {
		return util.Validation("project %q: dimension weights sum to %.4f, must sum to 1", project, total)
	}
	return nil
}
