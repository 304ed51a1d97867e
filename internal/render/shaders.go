package render

// litVS passes world-space position and normal to the fragment stage. Same vertex attributes as
// raylib meshes: vertexPosition, vertexTexCoord, vertexNormal.
const litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`

// litFS is ambient + one directional light with Blinn-Phong specular, attenuated by a 3x3 PCF
// lookup into the light's depth map. shadowStrength 0 disables the lookup. shadowBias is
// (slope, minimum) in light depth units.
const litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec3 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
uniform mat4 lightVP;
uniform sampler2D shadowMap;
uniform float shadowStrength;
uniform float shadowTexel;
uniform vec2 shadowBias;
out vec4 finalColor;

float lightVisibility(vec3 N, vec3 L) {
  if (shadowStrength <= 0.0) {
    return 1.0;
  }
  vec4 ls = lightVP * vec4(fragPosition, 1.0);
  vec3 p = ls.xyz / ls.w * 0.5 + 0.5;
  if (p.z > 1.0 || p.x < 0.0 || p.x > 1.0 || p.y < 0.0 || p.y > 1.0) {
    return 1.0;
  }
  float bias = max(shadowBias.x * (1.0 - dot(N, L)), shadowBias.y);
  float lit = 0.0;
  for (int x = -1; x <= 1; x++) {
    for (int y = -1; y <= 1; y++) {
      float depth = texture(shadowMap, p.xy + vec2(x, y) * shadowTexel).r;
      lit += (p.z - bias > depth) ? 0.0 : 1.0;
    }
  }
  return mix(1.0, lit / 9.0, shadowStrength);
}

void main() {
  vec4 tint = colDiffuse;
  vec3 N = normalize(fragNormal);
  if (!gl_FrontFacing) {
    N = -N;
  }
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient * tint.rgb;
  vec3 H = normalize(L + V);
  float NdotH = max(dot(N, H), 0.0);
  float spec = pow(NdotH, specularPower) * specularStrength;
  vec3 specular = lightColor * lightIntensity * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  float vis = lightVisibility(N, L);
  finalColor = vec4(amb + (diffuse + specular) * vis, tint.a);
}
`
