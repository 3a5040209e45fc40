package config

// 经济与角色参数
// 这些数值是固定的，不从配置文件读取
const (
	// StartingBalance 是会话开始时的初始金钱
	StartingBalance = 100.0

	// PigCost 是购买一只小猪的价格
	PigCost = 10.0

	// PigReward 是小猪到期卖出时获得的金钱（高于成本，产生利润）
	PigReward = 15.0

	// PigLifetime 是小猪的存活时间(秒)
	PigLifetime = 2.0

	// PlayerSpeed 是玩家移动速度(单位/秒)
	PlayerSpeed = 300.0
)
