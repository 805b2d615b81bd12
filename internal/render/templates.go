package render

import "siteforge/pkg/domain"

// TemplateInfo describes a selectable layout for picker UIs.
type TemplateInfo struct {
	ID          domain.TemplateID `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
}

// Templates lists the selectable layouts in display order.
func Templates() []TemplateInfo {
	return []TemplateInfo{
		{ID: domain.TemplateModern, Name: "现代简约", Description: "简洁现代的设计风格"},
		{ID: domain.TemplateCreative, Name: "创意设计", Description: "富有创意的视觉效果"},
		{ID: domain.TemplateProfessional, Name: "商务专业", Description: "专业商务风格"},
		{ID: domain.TemplateMinimal, Name: "极简主义", Description: "极简设计理念"},
	}
}

// Shared section snippets. Every optional section guards on its data and
// renders nothing when the data is absent.
const sectionsSrc = `
{{define "contactline"}}
<div class="contact">
  {{if .Info.Email}}<span>✉ {{.Info.Email}}</span>{{end}}
  {{if .Info.Phone}}<span>☎ {{.Info.Phone}}</span>{{end}}
  {{if .Info.Location}}<span>⌖ {{.Info.Location}}</span>{{end}}
</div>
{{end}}

{{define "bio"}}
{{if .Bio}}
<section class="section bio">
  <h2 style="color:{{.Colors.PrimaryText}}">关于我</h2>
  <div class="prose">{{.Bio}}</div>
</section>
{{end}}
{{end}}

{{define "skills"}}
{{if .Info.Skills}}
<section class="section skills">
  <h2 style="color:{{.Colors.PrimaryText}}">技能专长</h2>
  <div class="tags">
    {{range .Info.Skills}}<span class="tag" style="background:{{$.Colors.PrimaryLight}};color:{{$.Colors.PrimaryText}}">{{.}}</span>{{end}}
  </div>
</section>
{{end}}
{{end}}

{{define "projects"}}
{{if .Info.Projects}}
<section class="section projects">
  <h2 style="color:{{.Colors.PrimaryText}}">项目作品</h2>
  <div class="grid">
    {{range .Info.Projects}}
    <article class="card">
      {{if .Image}}<img src="{{.Image}}" alt="{{.Title}}">{{end}}
      <div class="card-body">
        <h3>{{.Title}}</h3>
        <p>{{.Description}}</p>
        {{if .Technologies}}
        <div class="tech">{{range .Technologies}}<span>{{.}}</span>{{end}}</div>
        {{end}}
        {{if .Link}}<a href="{{.Link}}" style="color:{{$.Colors.PrimaryText}}">查看项目 ↗</a>{{end}}
      </div>
    </article>
    {{end}}
  </div>
</section>
{{end}}
{{end}}

{{define "social"}}
{{if .Social}}
<div class="social">
  {{range .Social}}<a class="icon icon-{{.Icon}}" href="{{.URL}}" title="{{.Platform}}">{{.Label}}</a>{{end}}
</div>
{{end}}
{{end}}
`

const modernSrc = `
{{define "modern"}}<!doctype html>
<html lang="zh-CN"><head><meta charset="utf-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.Info.Name}} - {{.Info.Profession}}</title>
<style>{{template "basecss" .}}
.hero{position:relative;text-align:center;color:#fff;padding:5rem 1.5rem;
  background:linear-gradient(135deg,{{.Colors.GradientFrom}},{{.Colors.GradientTo}})}
.hero .bg{position:absolute;inset:0;background-size:cover;background-position:center;opacity:.2}
.hero img.avatar{width:8rem;height:8rem;border-radius:50%;border:4px solid #fff;object-fit:cover}
.hero h1{font-size:2.5rem;margin:.5rem 0}
.footer{background:linear-gradient(90deg,{{.Colors.GradientFrom}},{{.Colors.GradientTo}});color:#fff;text-align:center;padding:3rem 1.5rem}
</style></head>
<body>
<header class="hero">
  {{if .Info.BackgroundImage}}<div class="bg" style="background-image:url('{{.Info.BackgroundImage}}')"></div>{{end}}
  <div class="inner">
    {{if .Info.Avatar}}<img class="avatar" src="{{.Info.Avatar}}" alt="{{.Info.Name}}">{{end}}
    <h1>{{.Info.Name}}</h1>
    <p class="profession">{{.Info.Profession}}</p>
    {{template "contactline" .}}
  </div>
</header>
{{template "bio" .}}
{{template "skills" .}}
{{template "projects" .}}
<footer class="footer">
  <h2>联系我</h2>
  {{template "social" .}}
  <p>让我们一起创造精彩的项目！</p>
</footer>
</body></html>
{{end}}
`

const creativeSrc = `
{{define "creative"}}<!doctype html>
<html lang="zh-CN"><head><meta charset="utf-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.Info.Name}} - {{.Info.Profession}}</title>
<style>{{template "basecss" .}}
body{background:{{.Colors.PrimaryLight}}}
.banner{height:14rem;background:linear-gradient(60deg,{{.Colors.GradientFrom}},{{.Colors.GradientTo}});background-size:cover;background-position:center}
.profile{max-width:56rem;margin:-4rem auto 0;background:#fff;border-radius:1rem;padding:2rem;box-shadow:0 10px 30px rgba(0,0,0,.08)}
.profile img.avatar{width:7rem;height:7rem;border-radius:1rem;object-fit:cover;float:left;margin-right:1.5rem}
.profile h1{color:{{.Colors.PrimaryText}};margin:0}
</style></head>
<body>
<div class="banner"{{if .Info.BackgroundImage}} style="background-image:url('{{.Info.BackgroundImage}}')"{{end}}></div>
<div class="profile">
  {{if .Info.Avatar}}<img class="avatar" src="{{.Info.Avatar}}" alt="{{.Info.Name}}">{{end}}
  <h1>{{.Info.Name}}</h1>
  <p class="profession">{{.Info.Profession}}</p>
  {{template "contactline" .}}
  {{template "social" .}}
</div>
{{template "bio" .}}
{{template "skills" .}}
{{template "projects" .}}
</body></html>
{{end}}
`

const professionalSrc = `
{{define "professional"}}<!doctype html>
<html lang="zh-CN"><head><meta charset="utf-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.Info.Name}} - {{.Info.Profession}}</title>
<style>{{template "basecss" .}}
.topbar{background:#111827;color:#fff;padding:3rem 1.5rem}
.topbar .inner{max-width:56rem;margin:0 auto;display:flex;align-items:center;gap:1.5rem}
.topbar img.avatar{width:6rem;height:6rem;border-radius:50%;border:3px solid {{.Colors.Primary}};object-fit:cover}
.topbar h1{margin:0;font-size:2rem}
.topbar .profession{color:{{.Colors.Primary}}}
</style></head>
<body>
<header class="topbar">
  <div class="inner">
    {{if .Info.Avatar}}<img class="avatar" src="{{.Info.Avatar}}" alt="{{.Info.Name}}">{{end}}
    <div>
      <h1>{{.Info.Name}}</h1>
      <p class="profession">{{.Info.Profession}}</p>
      {{template "contactline" .}}
    </div>
  </div>
</header>
{{template "bio" .}}
{{template "skills" .}}
{{template "projects" .}}
<footer class="section" style="text-align:center">
  {{template "social" .}}
</footer>
</body></html>
{{end}}
`

const minimalSrc = `
{{define "minimal"}}<!doctype html>
<html lang="zh-CN"><head><meta charset="utf-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.Info.Name}}</title>
<style>{{template "basecss" .}}
.head{max-width:40rem;margin:4rem auto 0;padding:0 1.5rem;border-bottom:1px solid #e5e7eb}
.head h1{font-size:2rem;margin-bottom:.25rem}
.section{max-width:40rem}
h2{font-size:1.1rem;text-transform:uppercase;letter-spacing:.08em}
</style></head>
<body>
<header class="head">
  <h1>{{.Info.Name}}</h1>
  <p class="profession" style="color:{{.Colors.PrimaryText}}">{{.Info.Profession}}</p>
  {{template "contactline" .}}
</header>
{{template "bio" .}}
{{template "skills" .}}
{{template "projects" .}}
<footer class="section">
  {{template "social" .}}
</footer>
</body></html>
{{end}}
`

// fallbackSrc is the minimal default layout used for unknown template ids:
// name and profession only.
const fallbackSrc = `
{{define "fallback"}}<!doctype html>
<html lang="zh-CN"><head><meta charset="utf-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.Info.Name}}</title>
<style>body{font-family:system-ui,sans-serif;background:#fff;text-align:center;padding:4rem 2rem}</style>
</head>
<body>
<h1>{{.Info.Name}}</h1>
<p style="color:#4b5563;font-size:1.25rem">{{.Info.Profession}}</p>
</body></html>
{{end}}
`

const baseCSSSrc = `
{{define "basecss"}}
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:system-ui,-apple-system,"PingFang SC","Microsoft YaHei",sans-serif;color:#1f2937;line-height:1.6}
.section{max-width:56rem;margin:0 auto;padding:3rem 1.5rem}
.section h2{text-align:center;margin-bottom:1.5rem;font-size:1.75rem}
.profession{font-size:1.25rem;opacity:.9}
.contact{display:flex;flex-wrap:wrap;gap:1rem;justify-content:center;font-size:.9rem;margin-top:1rem}
.tags{display:flex;flex-wrap:wrap;gap:.75rem;justify-content:center}
.tag{padding:.4rem 1rem;border-radius:9999px;font-weight:500}
.grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(16rem,1fr));gap:1.5rem}
.card{background:#fff;border:1px solid #e5e7eb;border-radius:.5rem;overflow:hidden}
.card img{width:100%;height:10rem;object-fit:cover}
.card-body{padding:1.25rem}
.card-body h3{margin-bottom:.5rem}
.tech{display:flex;flex-wrap:wrap;gap:.4rem;margin:.75rem 0}
.tech span{background:#f3f4f6;color:#374151;font-size:.75rem;padding:.15rem .5rem;border-radius:.25rem}
.social{display:flex;gap:1rem;justify-content:center;margin:1rem 0}
.social a{display:inline-flex;align-items:center;justify-content:center;width:2.75rem;height:2.75rem;
  border-radius:50%;background:rgba(127,127,127,.15);color:inherit;text-decoration:none;font-weight:600}
.prose{max-width:48rem;margin:0 auto;color:#374151}
{{end}}
`
